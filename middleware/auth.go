package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"foodexpress-api/models"
)

const userContextKey = "currentUser"

var (
	errNoToken     = errors.New("no token supplied")
	errBadToken    = errors.New("invalid or expired token")
	errUnknownUser = errors.New("token subject not found")
)

// Claims is the JWT payload: subject id, email and role, 24h expiry.
type Claims struct {
	UserID uint            `json:"user_id"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Auth verifies bearer tokens and resolves them to stored users. It carries
// the signing secret and the database handle explicitly; there is no
// package-level state.
type Auth struct {
	secret []byte
	db     *gorm.DB
}

func NewAuth(secret string, db *gorm.DB) *Auth {
	return &Auth{secret: []byte(secret), db: db}
}

// GenerateToken creates a signed JWT for a given user, valid 24 hours.
func (a *Auth) GenerateToken(user *models.User) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// resolve extracts the bearer token, verifies it and loads the subject.
func (a *Auth) resolve(c *gin.Context) (*models.User, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errNoToken
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenStr == "" {
		return nil, errNoToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errBadToken
	}

	var user models.User
	if err := a.db.First(&user, claims.UserID).Error; err != nil {
		return nil, errUnknownUser
	}
	return &user, nil
}

// RequireAuth validates the JWT and injects the resolved user into the
// context. Every credential failure is a 401; 403 is reserved for policy
// denials further down the chain.
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.resolve(c)
		if err != nil {
			switch {
			case errors.Is(err, errNoToken):
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Token d'accès requis"})
			case errors.Is(err, errUnknownUser):
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Token invalide"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Token invalide ou expiré"})
			}
			c.Abort()
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is presented and
// silently proceeds otherwise.
func (a *Auth) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := a.resolve(c); err == nil {
			c.Set(userContextKey, user)
		}
		c.Next()
	}
}

// RequireAdmin allows only admin subjects through.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"message": "Accès réservé aux administrateurs"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireOwnerOrAdmin allows the subject through when it is an admin or when
// the :id path parameter names the subject itself.
func RequireOwnerOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if ok && user.Role == models.RoleAdmin {
			c.Next()
			return
		}
		if ok && strconv.FormatUint(uint64(user.ID), 10) == c.Param("id") {
			c.Next()
			return
		}
		c.JSON(http.StatusForbidden, gin.H{"message": "Accès non autorisé. Vous ne pouvez accéder qu'à vos propres données."})
		c.Abort()
	}
}

// CurrentUser extracts the resolved subject from the context.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}
