package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"gastos/internal/config"
	apperrors "gastos/internal/errors"
	"gastos/internal/models"
)

const (
	identityKey   = "identity"
	tokenStateKey = "tokenState"
)

// tokenState records what the resolution middleware saw in the
// Authorization header, so the auth guard can pick the right status code
// without re-parsing the token.
type tokenState int

const (
	tokenAbsent tokenState = iota
	tokenInvalid
	tokenValid
)

// Identity is the outcome of resolving the caller of a request. It is an
// explicit value rather than loose context fields: handlers either get an
// authenticated identity with a bound tenant, or an anonymous one. There is
// no in-between state where a tenant id is silently unset.
type Identity struct {
	Authenticated bool
	UserID        string
	TenantID      string
	Role          models.UserRole
}

// Anonymous is the identity of an unauthenticated request.
var Anonymous = Identity{}

// IdentityFrom returns the identity resolved for this request.
// Requests that never went through ResolveIdentity are anonymous.
func IdentityFrom(c *gin.Context) Identity {
	if v, ok := c.Get(identityKey); ok {
		return v.(Identity)
	}
	return Anonymous
}

// getJWTKey returns the JWT signing key from configuration.
func getJWTKey() []byte {
	return []byte(config.Get().JWTSecret)
}

// Claims represents the claims carried in a bearer token.
type Claims struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	Language string `json:"language,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs a bearer token for the user. Expiry comes from
// configuration and defaults to 7 days; there is no revocation, so a token
// stays valid until it expires.
func GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Role:     string(user.Role),
		Language: user.PreferredLanguage,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(config.Get().JWTExpirationDur)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "gastos-api",
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTKey())
}

// parseToken verifies the signature and expiry of a bearer token.
func parseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTKey(), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The second return value reports whether a header was present at all.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", true
	}
	return parts[1], true
}

// ResolveIdentity returns middleware that resolves the caller's identity on
// every request. It is best-effort: a missing or invalid token leaves the
// request anonymous rather than rejecting it, so routes that tolerate
// anonymous access keep working.
//
// On a valid token it reads the user's current tenant from the store (one
// round trip per request; token decode is local) and binds the identity for
// the rest of request processing. A token whose user no longer exists also
// resolves to anonymous: the request is never silently scoped to another
// tenant.
func ResolveIdentity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, present := bearerToken(c)
		if !present {
			c.Set(tokenStateKey, tokenAbsent)
			c.Set(identityKey, Anonymous)
			c.Next()
			return
		}

		claims, err := parseToken(tokenString)
		if err != nil {
			c.Set(tokenStateKey, tokenInvalid)
			c.Set(identityKey, Anonymous)
			c.Next()
			return
		}
		c.Set(tokenStateKey, tokenValid)

		var user models.User
		if err := db.Select("id", "tenant_id", "role").First(&user, "id = ?", claims.UserID).Error; err != nil {
			// Deleted user with a still-valid token: proceed anonymous.
			c.Set(identityKey, Anonymous)
			c.Next()
			return
		}

		c.Set(identityKey, Identity{
			Authenticated: true,
			UserID:        user.ID,
			TenantID:      user.TenantID,
			Role:          user.Role,
		})
		c.Next()
	}
}

// RequireAuth returns middleware that rejects unauthenticated requests
// before business logic runs. It must be mounted after ResolveIdentity.
//
// Status codes follow the API contract: a missing token is 401, a token
// that fails verification is 403, and a verified token whose user cannot
// be resolved to a tenant is 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := tokenAbsent
		if v, ok := c.Get(tokenStateKey); ok {
			state = v.(tokenState)
		}

		if state == tokenInvalid {
			abortWithError(c, apperrors.ErrInvalidToken)
			return
		}

		if !IdentityFrom(c).Authenticated {
			abortWithError(c, apperrors.ErrAccessDenied)
			return
		}

		c.Next()
	}
}

func abortWithError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{"error": appErr.Message})
}
