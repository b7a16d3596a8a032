package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-blog-api/internal/apperr"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

func TestRegister(t *testing.T) {
	svc := newTestAuthService()

	u, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Jane",
		Email:    "jane@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Jane", u.Name)
	assert.Equal(t, "jane@x.com", u.Email)
	// stored credential is a hash, not the plaintext
	assert.NotEqual(t, "secret1", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "secret1"))
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuthService()

	tests := []struct {
		name string
		in   RegisterInput
	}{
		{"missing name", RegisterInput{Email: "a@x.com", Password: "secret1"}},
		{"missing email", RegisterInput{Name: "A", Password: "secret1"}},
		{"malformed email", RegisterInput{Name: "A", Email: "not-an-email", Password: "secret1"}},
		{"missing password", RegisterInput{Name: "A", Email: "a@x.com"}},
		{"short password", RegisterInput{Name: "A", Email: "a@x.com", Password: "abc"}},
		{"name too long", RegisterInput{Name: string(make([]byte, 256)), Email: "a@x.com", Password: "secret1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.in)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	first, err := svc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "Other Jane", Email: "jane@x.com", Password: "secret2"})
	assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)

	// first user record is unaffected
	again, err := svc.Users.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", again.Name)
	assert.True(t, helpers.CompareHashAndPassword(again.Password, "secret1"))
}

func TestLoginAndResolve(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@x.com", Password: "secret1"})
	require.NoError(t, err)

	tok, err := svc.Login(ctx, "jane@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.Equal(t, int(time.Hour.Seconds()), tok.ExpiresIn)
	assert.NotEmpty(t, tok.AccessToken)

	uid, err := svc.ResolveUser(ctx, tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)
}

func TestLoginBadCredentials(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@x.com", Password: "secret1"})
	require.NoError(t, err)

	// wrong password and unknown email must be indistinguishable
	_, errWrongPwd := svc.Login(ctx, "jane@x.com", "wrong")
	_, errNoUser := svc.Login(ctx, "nobody@x.com", "secret1")

	assert.ErrorIs(t, errWrongPwd, apperr.ErrUnauthorized)
	assert.ErrorIs(t, errNoUser, apperr.ErrUnauthorized)
	assert.Equal(t, apperr.ClientMessage(errWrongPwd), apperr.ClientMessage(errNoUser))
}

func TestLoginStoreFailureIsInternal(t *testing.T) {
	svc := newTestAuthService()
	svc.Users = failingUserRepo{}

	// a broken store must not masquerade as bad credentials
	_, err := svc.Login(context.Background(), "jane@x.com", "secret1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInternal)
	assert.NotErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestResolveUserRejects(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	_, err := svc.ResolveUser(ctx, "")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = svc.ResolveUser(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	// structurally valid token signed with another secret
	other := helpers.NewJWTManager("other-secret", time.Hour)
	forged, _, err := other.GenerateToken("someone", "sid")
	require.NoError(t, err)
	_, err = svc.ResolveUser(ctx, forged)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestResolveUserExpiredToken(t *testing.T) {
	svc := newTestAuthService()
	svc.JWT = helpers.NewJWTManager("test-secret", -time.Minute) // already expired
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@x.com", Password: "secret1"})
	require.NoError(t, err)
	tok, err := svc.Login(ctx, "jane@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.ResolveUser(ctx, tok.AccessToken)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@x.com", Password: "secret1"})
	require.NoError(t, err)
	tok, err := svc.Login(ctx, "jane@x.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, tok.AccessToken))

	// token is rejected from now on, even though the JWT itself is unexpired
	_, err = svc.ResolveUser(ctx, tok.AccessToken)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	// logout is idempotent at the error level: second call fails cleanly
	err = svc.Logout(ctx, tok.AccessToken)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestLoginIssuesIndependentSessions(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: "Jane", Email: "jane@x.com", Password: "secret1"})
	require.NoError(t, err)

	tok1, err := svc.Login(ctx, "jane@x.com", "secret1")
	require.NoError(t, err)
	tok2, err := svc.Login(ctx, "jane@x.com", "secret1")
	require.NoError(t, err)

	// logging out one session leaves the other valid
	require.NoError(t, svc.Logout(ctx, tok1.AccessToken))
	uid, err := svc.ResolveUser(ctx, tok2.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)
}
