package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventflow-app/eventflow-api/pkg/blob"
	appErrors "github.com/eventflow-app/eventflow-api/pkg/errors"

	"github.com/eventflow-app/eventflow-api/internal/dto"
)

type blobMemory struct {
	data []byte
}

func (b *blobMemory) Load(context.Context) ([]byte, error) {
	if b.data == nil {
		return nil, blob.ErrNotFound
	}
	return b.data, nil
}

func (b *blobMemory) Save(_ context.Context, data []byte) error {
	b.data = data
	return nil
}

func newAuthService() (*AuthService, *blobMemory) {
	users := &blobMemory{}
	return NewAuthService(users, "test-secret", time.Hour, nil, nil), users
}

func registerReq() dto.RegisterRequest {
	return dto.RegisterRequest{Name: "Dana", Email: "dana@example.com", Password: "hunter22"}
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc, users := newAuthService()

	res, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.NotEmpty(t, res.User.ID)
	assert.Equal(t, "dana@example.com", res.User.Email)
	assert.NotNil(t, users.data, "accounts must be persisted")
	assert.NotContains(t, string(users.data), "hunter22", "passwords are stored hashed")

	login, err := svc.Login(context.Background(), dto.LoginRequest{Email: "Dana@Example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerReq())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestAuthRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newAuthService()

	req := registerReq()
	req.Password = "tiny"
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "dana@example.com", Password: "wrong-pass"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "nobody@example.com", Password: "whatever1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthValidateToken(t *testing.T) {
	svc, _ := newAuthService()

	res, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "dana@example.com", claims.Email)
	assert.Equal(t, "Dana", claims.Name)
}

func TestAuthValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthValidateTokenRejectsForeignSecret(t *testing.T) {
	svc, _ := newAuthService()
	other := NewAuthService(&blobMemory{}, "different-secret", time.Hour, nil, nil)

	res, err := other.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.ValidateToken(res.Token)
	require.Error(t, err)
}

func TestAuthAccountsSurviveRestart(t *testing.T) {
	svc, users := newAuthService()

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	// A new service over the same blob sees the registered account.
	reborn := NewAuthService(users, "test-secret", time.Hour, nil, nil)
	_, err = reborn.Login(context.Background(), dto.LoginRequest{Email: "dana@example.com", Password: "hunter22"})
	require.NoError(t, err)
}

func TestAuthMalformedAccountsBlobStartsEmpty(t *testing.T) {
	users := &blobMemory{data: []byte("not json")}
	svc := NewAuthService(users, "test-secret", time.Hour, nil, nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "dana@example.com", Password: "hunter22"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}
