package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/golang-jwt/jwt/v5"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"
	"go.opentelemetry.io/otel"

	"github.com/capitania/consimar/internal/crypto"
	"github.com/capitania/consimar/internal/domain"
	"github.com/capitania/consimar/internal/usecase"
)

var tracer = otel.Tracer("auth")

const profileCacheSeconds = 60

// AuthService issues and validates the session tokens the REST layer
// carries. Validated tokens are cached in-process keyed by a hash of the
// raw token, and user profiles are cached in memcached so a busy
// dashboard does not hit postgres on every request.
type AuthService struct {
	users    usecase.UserRepository
	mc       *memcache.Client
	tokens   *gocache.Cache
	secret   []byte
	tokenTTL time.Duration
	onLogout []func()
}

func NewAuthService(
	users usecase.UserRepository,
	mc *memcache.Client,
	secret []byte,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:    users,
		mc:       mc,
		tokens:   gocache.New(5*time.Minute, 10*time.Minute),
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// OnLogout registers a hook invoked whenever a session ends. The session
// layer never reaches into the data layer directly; interested parties
// subscribe here instead.
func (s *AuthService) OnLogout(fn func()) {
	s.onLogout = append(s.onLogout, fn)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Login")
	defer span.End()

	user, hash, err := s.users.GetCredentials(ctx, username)
	if err != nil {
		span.RecordError(errors.Wrap(err, "credential lookup failed"))
		return "", domain.User{}, domain.ErrUnauthorized
	}
	if !crypto.VerifyPassword(password, hash) {
		return "", domain.User{}, domain.ErrUnauthorized
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		span.RecordError(err)
		return "", domain.User{}, err
	}
	return token, user, nil
}

// AuthJwt resolves a bearer token to the user behind it. A token whose
// profile can no longer be fetched is treated as unauthorized rather
// than degraded: a session without an identity must not reach the data
// layer.
func (s *AuthService) AuthJwt(ctx context.Context, token string) (domain.User, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.AuthJwt")
	defer span.End()

	cacheKey := fmt.Sprintf("token:%x", xxh3.HashString(token))
	if cached, ok := s.tokens.Get(cacheKey); ok {
		return cached.(domain.User), nil
	}

	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		span.RecordError(errors.Wrap(err, "jwt validation failed"))
		return domain.User{}, domain.ErrUnauthorized
	}

	user, err := s.profile(ctx, claims.Subject)
	if err != nil {
		span.RecordError(errors.Wrap(err, "profile fetch failed"))
		return domain.User{}, domain.ErrUnauthorized
	}

	s.tokens.Set(cacheKey, user, gocache.DefaultExpiration)
	return user, nil
}

// Logout drops the cached session and fires the registered hooks.
func (s *AuthService) Logout(ctx context.Context, token string) {
	_, span := tracer.Start(ctx, "Auth.Service.Logout")
	defer span.End()

	s.tokens.Delete(fmt.Sprintf("token:%x", xxh3.HashString(token)))
	for _, fn := range s.onLogout {
		fn()
	}
}

// InvalidateProfile evicts a user's cached profile after an admin edit.
func (s *AuthService) InvalidateProfile(id string) {
	_ = s.mc.Delete(profileKey(id))
}

func (s *AuthService) profile(ctx context.Context, id string) (domain.User, error) {
	key := profileKey(id)
	if item, err := s.mc.Get(key); err == nil {
		var user domain.User
		if err := json.Unmarshal(item.Value, &user); err == nil {
			return user, nil
		}
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if raw, err := json.Marshal(user); err == nil {
		_ = s.mc.Set(&memcache.Item{
			Key:        key,
			Value:      raw,
			Expiration: profileCacheSeconds,
		})
	}
	return user, nil
}

func profileKey(id string) string {
	return "usuario:" + id
}
