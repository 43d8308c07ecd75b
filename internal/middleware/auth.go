package middleware

import (
	"net/http"
	"strings"

	"github.com/GenturixHub/Genturix-sub003/internal/access"
	"github.com/GenturixHub/Genturix-sub003/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey = "claims"
)

// JWTClaims are the custom claims embedded in every access token. Roles
// carries the user's full role set: route access is granted when the set
// intersects the route's allowed roles.
type JWTClaims struct {
	UserID                string   `json:"user_id"`
	Email                 string   `json:"email"`
	Roles                 []string `json:"roles"`
	CondominioID          *string  `json:"condominio_id"`
	PasswordResetRequired bool     `json:"password_reset_required"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects requests when none of the user's roles is in the
// allowed list. Legacy role spellings in the token are normalized first.
func RequireRole(roles ...access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok || !access.CanEnter(roles, access.NormalizeAll(claims.Roles)) {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		c.Next()
	}
}

// RequirePasswordChanged blocks every route except the password-change flow
// while the account still carries its temporary credentials.
func RequirePasswordChanged() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if ok && claims.PasswordResetRequired {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Debe cambiar su contrasena temporal antes de continuar"))
			return
		}
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	return claims
}
