package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/capitania/consimar/internal/domain"
	"github.com/capitania/consimar/internal/present/rest/presenter"
	"github.com/capitania/consimar/internal/service"
)

var tracer = otel.Tracer("auth")

// RequesterKey is where IdentifyIdentity stores the resolved user on the
// echo context.
const RequesterKey = "requester"

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

// IdentifyIdentity resolves the bearer token to a user account when one
// is present. It never rejects by itself; RequireIdentity does that for
// the routes that need it.
func (s *AuthMiddleware) IdentifyIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyIdentity")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")

		if authHeader != "" {
			split := strings.Split(authHeader, " ")
			if len(split) != 2 {
				span.RecordError(fmt.Errorf("invalid authentication header"))
				goto skipCheckAuthorization
			}

			{
				authType, token := split[0], split[1]
				if authType != "Bearer" {
					span.RecordError(fmt.Errorf("only Bearer is acceptable"))
					goto skipCheckAuthorization
				}

				user, err := s.auth.AuthJwt(ctx, token)
				if err != nil {
					span.RecordError(errors.Wrap(err, "AuthMiddleware.IdentifyIdentity: s.auth.AuthJwt failed"))
					goto skipCheckAuthorization
				}

				c.Set(RequesterKey, user)
				ctx = context.WithValue(ctx, domain.RequesterIdCtxKey, user.ID)
				ctx = context.WithValue(ctx, domain.RequesterRoleCtxKey, string(user.Role))
				span.SetAttributes(attribute.String("RequesterId", user.ID))
			}
		}

	skipCheckAuthorization:
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// RequireIdentity rejects requests that did not authenticate.
func (s *AuthMiddleware) RequireIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := c.Get(RequesterKey).(domain.User); !ok {
			return presenter.Unauthorized(c)
		}
		return next(c)
	}
}
