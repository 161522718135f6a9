package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventflow-app/eventflow-api/pkg/blob"
	appErrors "github.com/eventflow-app/eventflow-api/pkg/errors"

	"github.com/eventflow-app/eventflow-api/internal/dto"
	"github.com/eventflow-app/eventflow-api/internal/models"
)

// AuthService implements the optional JWT perimeter: register, login and
// token validation. Accounts live in their own blob alongside the calendar
// snapshot; this is a single-calendar deployment, so accounts gate access
// but do not partition data.
type AuthService struct {
	users      blob.Store
	secret     []byte
	expiration time.Duration
	validator  *validator.Validate
	logger     *zap.Logger

	mu       sync.Mutex
	accounts []models.User
	loaded   bool
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewAuthService constructs the service.
func NewAuthService(users blob.Store, secret string, expiration time.Duration, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		secret:     []byte(secret),
		expiration: expiration,
		validator:  validate,
		logger:     logger,
	}
}

// Register creates an account and returns a signed token for it.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	for _, account := range s.accounts {
		if account.Email == email {
			return nil, appErrors.Clone(appErrors.ErrConflict, "an account with this email already exists")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	account := models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	s.accounts = append(s.accounts, account)
	if err := s.persistLocked(ctx); err != nil {
		s.accounts = s.accounts[:len(s.accounts)-1]
		return nil, err
	}

	s.logger.Info("account registered", zap.String("user_id", account.ID))
	return s.respond(account)
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	for _, account := range s.accounts {
		if account.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
			return nil, appErrors.ErrInvalidCredentials
		}
		return s.respond(account)
	}
	return nil, appErrors.ErrInvalidCredentials
}

// ValidateToken parses and verifies a bearer token.
func (s *AuthService) ValidateToken(raw string) (*models.JWTClaims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return &models.JWTClaims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}

func (s *AuthService) respond(account models.User) (*dto.AuthResponse, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
		Email: account.Email,
		Name:  account.Name,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}
	return &dto.AuthResponse{
		Token: signed,
		User:  dto.UserView{ID: account.ID, Name: account.Name, Email: account.Email},
	}, nil
}

// ensureLoaded lazily restores accounts from the blob store. A malformed
// accounts blob is dropped and logged, matching the calendar snapshot's
// recovery policy.
func (s *AuthService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	raw, err := s.users.Load(ctx)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			s.loaded = true
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load accounts")
	}
	var accounts []models.User
	if err := json.Unmarshal(raw, &accounts); err != nil {
		s.logger.Error("accounts blob malformed, starting empty", zap.Error(err))
		s.loaded = true
		return nil
	}
	s.accounts = accounts
	s.loaded = true
	return nil
}

func (s *AuthService) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(s.accounts)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode accounts")
	}
	if err := s.users.Save(ctx, raw); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save accounts")
	}
	return nil
}
