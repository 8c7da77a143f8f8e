package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/internal/engine/repo"
	"github.com/go-arcade/guild/pkg/cache"
	"github.com/go-arcade/guild/pkg/http"
	"github.com/go-arcade/guild/pkg/http/jwt"
	"github.com/go-arcade/guild/pkg/id"
	"github.com/go-arcade/guild/pkg/log"
	goJwt "github.com/golang-jwt/jwt/v5"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	auth     http.Auth
	repos    *repo.Repositories
	sessions *cache.SessionStore
}

func NewAuthService(auth http.Auth, repos *repo.Repositories, sessions *cache.SessionStore) *AuthService {
	return &AuthService{
		auth:     auth,
		repos:    repos,
		sessions: sessions,
	}
}

func (as *AuthService) Register(ctx context.Context, req *model.RegisterReq) (*model.User, error) {
	email := normalizeEmail(req.Email)
	taken, err := as.repos.User.EmailTaken(ctx, email, "")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "check email")
	}
	if taken {
		return nil, http.UserAlreadyExist
	}

	password, err := getPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		UserId:   id.GetUUIDWithoutDashes(),
		Email:    email,
		Password: string(password),
		Name:     req.Name,
		IsActive: true,
	}
	if err := as.repos.User.Create(ctx, user); err != nil {
		return nil, dbError(err, nil, http.UserAlreadyExist, "create user")
	}
	log.Infow("user registered", "userId", user.UserId)
	return user, nil
}

// Login issues a token for an active user and records its session
func (as *AuthService) Login(ctx context.Context, req *model.LoginReq) (*model.LoginResp, error) {
	user, err := as.repos.User.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if isNotFound(err) {
			return nil, http.UserIncorrectPassword
		}
		return nil, pkgerrors.Wrap(err, "load user")
	}
	if !comparePassword(user.Password, req.Password) {
		log.Debugw("incorrect password provided", "userId", user.UserId)
		return nil, http.UserIncorrectPassword
	}
	if !user.IsActive {
		return nil, http.UserDeactivated
	}

	token, claims, err := jwt.GenToken(user.UserId, user.Email, []byte(as.auth.SecretKey), as.auth.AccessTTL())
	if err != nil {
		return nil, pkgerrors.Wrap(err, "generate token")
	}
	session := &cache.Session{
		UserId:    user.UserId,
		Email:     user.Email,
		TokenId:   claims.ID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := as.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return &model.LoginResp{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Unix(),
		User:      user,
	}, nil
}

// Authenticate verifies the token signature and expiry, that its session
// has not been revoked and that the user is still active
func (as *AuthService) Authenticate(ctx context.Context, token string) (*jwt.AuthClaims, error) {
	claims, err := jwt.ParseToken(token, as.auth.SecretKey)
	if err != nil {
		if errors.Is(err, goJwt.ErrTokenExpired) {
			return nil, http.TokenExpired
		}
		return nil, http.InvalidToken.WithCause(err)
	}
	session, err := as.sessions.Get(ctx, claims.UserId, claims.ID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.ExpiresAt.Before(time.Now()) {
		return nil, http.SessionRevoked
	}
	user, err := as.repos.User.Get(ctx, claims.UserId)
	if err != nil {
		return nil, dbError(err, http.InvalidToken, nil, "load token user")
	}
	if !user.IsActive {
		return nil, http.UserDeactivated
	}
	return claims, nil
}

func (as *AuthService) Logout(ctx context.Context, claims *jwt.AuthClaims) error {
	return as.sessions.Revoke(ctx, claims.UserId, claims.ID)
}

// RevokeAll ends every session of the user
func (as *AuthService) RevokeAll(ctx context.Context, userId string) error {
	return as.sessions.RevokeAll(ctx, userId)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func getPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "hash password")
	}
	return hash, nil
}

func comparePassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
