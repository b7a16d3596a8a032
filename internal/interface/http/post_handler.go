package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/apperr"
	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
	"github.com/oksasatya/go-blog-api/pkg/response"
	"github.com/oksasatya/go-blog-api/pkg/validation"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type createPostRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

type updatePostRequest struct {
	Title   string `json:"title" binding:"omitempty,max=255"`
	Content string `json:"content"`
}

func postPayload(p *entity.Post) gin.H {
	return gin.H{
		"id":         p.ID,
		"title":      p.Title,
		"content":    p.Content,
		"user_id":    p.UserID,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
}

// postID validates the :id route param. Anything that is not a UUID cannot
// name a stored post, so it short-circuits to not-found before hitting the
// store.
func postID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if err := uuid.Validate(id); err != nil {
		respondError(c, nil, apperr.NotFound("post"))
		return "", false
	}
	return id, true
}

// List GET /api/posts
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	out := make([]gin.H, 0, len(posts))
	for _, p := range posts {
		out = append(out, postPayload(p))
	}
	response.Success(c, http.StatusOK, out, "posts", nil)
}

// Create POST /api/posts (bearer)
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	token := c.GetString(middleware.CtxTokenKey)
	p, err := h.Svc.Create(c.Request.Context(), token, application.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	response.Success(c, http.StatusCreated, postPayload(p), "post created", nil)
}

// Get GET /api/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, postPayload(p), "post", nil)
}

// Update PUT /api/posts/:id (bearer, owner)
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	token := c.GetString(middleware.CtxTokenKey)
	p, err := h.Svc.Update(c.Request.Context(), token, id, application.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	response.Success(c, http.StatusOK, postPayload(p), "post updated", nil)
}

// Delete DELETE /api/posts/:id (bearer, owner)
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	token := c.GetString(middleware.CtxTokenKey)
	if err := h.Svc.Delete(c.Request.Context(), token, id); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "post deleted successfully", nil)
}
