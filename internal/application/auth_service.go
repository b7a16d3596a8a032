package application

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/apperr"
	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	repo "github.com/oksasatya/go-blog-api/internal/domain/repository"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
	"github.com/oksasatya/go-blog-api/pkg/mailer"
)

// SessionStore tracks which session ids are live. A token is only accepted
// while its session id is present; logout deletes it.
type SessionStore interface {
	Put(ctx context.Context, sid, userID string, ttl time.Duration) error
	Get(ctx context.Context, sid string) (userID string, ok bool, err error)
	Delete(ctx context.Context, sid string) error
}

// MailPublisher enqueues email jobs. Satisfied by helpers.RabbitPublisher.
type MailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService verifies credentials and manages the bearer-token lifecycle.
type AuthService struct {
	Users    repo.UserRepository
	Sessions SessionStore
	JWT      *helpers.JWTManager
	Logger   *logrus.Logger
	Mail     MailPublisher // optional; welcome emails are best effort
	AppName  string
}

func NewAuthService(users repo.UserRepository, sessions SessionStore, jwt *helpers.JWTManager, logger *logrus.Logger, pub MailPublisher, appName string) *AuthService {
	return &AuthService{
		Users:    users,
		Sessions: sessions,
		JWT:      jwt,
		Logger:   logger,
		Mail:     pub,
		AppName:  appName,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (in RegisterInput) validate() error {
	if in.Name == "" {
		return apperr.Validation("name is required")
	}
	if len(in.Name) > 255 {
		return apperr.Validation("name must be at most 255 characters long")
	}
	if in.Email == "" {
		return apperr.Validation("email is required")
	}
	if len(in.Email) > 255 {
		return apperr.Validation("email must be at most 255 characters long")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return apperr.Validation("email must be a valid email")
	}
	if in.Password == "" {
		return apperr.Validation("password is required")
	}
	if len(in.Password) < 6 {
		return apperr.Validation("password must be at least 6 characters long")
	}
	return nil
}

// Register stores a new user with a hashed password. The email must not be
// taken; the returned user never carries the hash back to the boundary.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	u := &entity.User{Name: in.Name, Email: in.Email, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.publishWelcome(ctx, u)
	return u, nil
}

func (s *AuthService) publishWelcome(ctx context.Context, u *entity.User) {
	if s.Mail == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: "welcome",
		Data: map[string]any{
			"app_name": s.AppName,
			"name":     u.Name,
			"email":    u.Email,
		},
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email publish failed")
	}
}

// Token is the credential handed back on login.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int // seconds
}

// Login checks credentials and issues a bearer token bound to a fresh session.
// Unknown email and wrong password report the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Token, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, apperr.Internal(err)
	}
	if u == nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	sid := uuid.NewString()
	access, _, err := s.JWT.GenerateToken(u.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return nil, apperr.Internal(err)
	}
	if err := s.Sessions.Put(ctx, sid, u.ID, s.JWT.TTL); err != nil {
		return nil, apperr.Internal(err)
	}

	return &Token{
		AccessToken: access,
		TokenType:   "bearer",
		ExpiresIn:   int(s.JWT.TTL.Seconds()),
	}, nil
}

// resolveClaims validates the token signature and expiry and checks that its
// session is still live and bound to the same user.
func (s *AuthService) resolveClaims(ctx context.Context, token string) (*helpers.Claims, error) {
	if token == "" {
		return nil, apperr.Unauthorized("missing access token")
	}
	claims, err := s.JWT.ParseToken(token)
	if err != nil {
		return nil, apperr.Unauthorized("invalid access token")
	}
	uid, ok, err := s.Sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok || uid != claims.UserID {
		return nil, apperr.Unauthorized("session not found")
	}
	return claims, nil
}

// ResolveUser returns the user id the token belongs to, or unauthorized when
// the token is missing, malformed, expired or logged out.
func (s *AuthService) ResolveUser(ctx context.Context, token string) (string, error) {
	claims, err := s.resolveClaims(ctx, token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// Logout invalidates the presented token. A second logout with the same token
// fails with unauthorized because the session is already gone.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.resolveClaims(ctx, token)
	if err != nil {
		return err
	}
	if err := s.Sessions.Delete(ctx, claims.SessionID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
