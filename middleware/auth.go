package middleware

import (
	"net/http"
	"strings"
	"time"

	"self-order-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Auth issues and validates session tokens. The signing secret is injected
// at startup rather than read from shared process state.
type Auth struct {
	secret []byte
}

func NewAuth(secret []byte) *Auth {
	return &Auth{secret: secret}
}

type Claims struct {
	UserID   int             `json:"user_id"`
	Nickname string          `json:"nickname"`
	Role     models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for a given user
func (a *Auth) GenerateToken(user models.User) (string, error) {
	claims := Claims{
		UserID:   user.ID,
		Nickname: user.Nickname,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Required validates the JWT and injects the caller identity into context
func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		c.Set("userID", claims.UserID)
		c.Set("nickname", claims.Nickname)
		c.Set("role", string(claims.Role))
		c.Next()
	}
}

// ChefOnly enforces the chef role
func (a *Auth) ChefOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c).Role != models.RoleChef {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Chef role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser extracts the caller identity from context
func CurrentUser(c *gin.Context) models.User {
	id, _ := c.Get("userID")
	nickname, _ := c.Get("nickname")
	role, _ := c.Get("role")
	userID, _ := id.(int)
	name, _ := nickname.(string)
	r, _ := role.(string)
	return models.User{ID: userID, Nickname: name, Role: models.UserRole(r)}
}
