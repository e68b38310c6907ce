package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"sme-finance-engine/internal/domain/actor"
)

const actorContextKey = "auth.actor"

type actorClaims struct {
	Role  string `json:"role"`
	SMEID string `json:"sme_id,omitempty"`
	jwt.RegisteredClaims
}

// ActorMiddleware extracts the authenticated actor from a bearer token
// issued by the external identity provider. The engine only consumes the
// already-validated identity; it never sees passwords or issues sessions.
func ActorMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if !strings.HasPrefix(raw, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			tokenStr := strings.TrimPrefix(raw, "Bearer ")

			claims := &actorClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			if claims.Subject == "" || !reHex32.MatchString(claims.Subject) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid subject"})
			}

			role := actor.Role(claims.Role)
			if role != actor.RoleSME && role != actor.RoleLender {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unknown role"})
			}
			if role == actor.RoleSME && !reHex32.MatchString(claims.SMEID) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "sme actor without sme_id"})
			}

			c.Set(actorContextKey, actor.Actor{ID: claims.Subject, Role: role, SMEID: claims.SMEID})
			return next(c)
		}
	}
}

// ActorFrom returns the actor injected by ActorMiddleware.
func ActorFrom(c echo.Context) (actor.Actor, bool) {
	a, ok := c.Get(actorContextKey).(actor.Actor)
	return a, ok
}

// SignActorToken builds a token the middleware accepts. Test helper; the
// real issuer lives in the identity service.
func SignActorToken(secret string, a actor.Actor) (string, error) {
	claims := actorClaims{
		Role:  string(a.Role),
		SMEID: a.SMEID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: a.ID,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
