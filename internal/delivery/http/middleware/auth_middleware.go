package middleware

import (
	"net/http"
	"slices"
	"strings"

	"dacsan/config"
	deliverycontext "dacsan/internal/delivery/context"
	"dacsan/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const rolesContextKey = "roles"

// AuthMiddleware provides middleware for JWT authentication and authorization.
// Accounts are managed elsewhere; the storefront only consumes the issued tokens.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	cfg      *config.Config
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, cfg: cfg}
}

// Authenticate validates the bearer access token and stores the caller's
// identity and roles on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return unauthorized(c, "Invalid token format, must be Bearer token")
		}

		token, err := m.tokenSvc.ValidateToken(tokenString, m.cfg.SecretKey.Access)
		if err != nil || !token.Valid {
			return unauthorized(c, "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(c, "Failed to parse token claims")
		}

		userID, err := subjectUserID(claims)
		if err != nil {
			return unauthorized(c, err.Error())
		}

		deliverycontext.SetUserID(c, userID)
		c.Set(rolesContextKey, roleClaims(claims))

		return next(c)
	}
}

// RequireRole gates a route group on a role carried in the token claims.
// It must run after Authenticate.
func (m *AuthMiddleware) RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, ok := c.Get(rolesContextKey).([]string)
			if !ok {
				return forbidden(c, "Permission denied: role information missing")
			}
			if !slices.Contains(roles, requiredRole) {
				return forbidden(c, "Permission denied: require '"+requiredRole+"' role")
			}

			return next(c)
		}
	}
}

func subjectUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errMissingSubject
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errInvalidSubject
	}

	return userID, nil
}

func roleClaims(claims jwt.MapClaims) []string {
	rolesClaim, _ := claims["roles"].([]any)
	roles := make([]string, 0, len(rolesClaim))
	for _, r := range rolesClaim {
		if role, ok := r.(string); ok {
			roles = append(roles, role)
		}
	}

	return roles
}

var (
	errMissingSubject = claimError("User ID missing from token")
	errInvalidSubject = claimError("Invalid user ID format in token")
)

type claimError string

func (e claimError) Error() string {
	return string(e)
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": message})
}

func forbidden(c echo.Context, message string) error {
	return c.JSON(http.StatusForbidden, map[string]string{"error": message})
}
