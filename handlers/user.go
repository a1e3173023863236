package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"foodexpress-api/middleware"
	"foodexpress-api/models"
)

type UserHandler struct {
	DB   *gorm.DB
	Auth *middleware.Auth
	Log  *slog.Logger
}

func NewUserHandler(db *gorm.DB, auth *middleware.Auth, log *slog.Logger) *UserHandler {
	return &UserHandler{DB: db, Auth: auth, Log: log}
}

type RegisterRequest struct {
	Username string          `json:"username" binding:"required,max=255"`
	Email    string          `json:"email" binding:"required,email,max=255"`
	Password string          `json:"password" binding:"required,min=6,max=255"`
	Role     models.UserRole `json:"role" binding:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new account. The role defaults to "user" unless the
// payload names one explicitly.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides", "error": err.Error()})
		return
	}

	var existing models.User
	err := h.DB.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Un utilisateur avec cet email ou ce nom d'utilisateur existe déjà"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création de l'utilisateur", "error": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		// Unique indexes back the pre-check: a concurrent register landing
		// between the check and the insert still surfaces as a conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Un utilisateur avec cet email ou ce nom d'utilisateur existe déjà"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création de l'utilisateur", "error": err.Error()})
		return
	}

	h.Log.Info("user registered", "user_id", user.ID, "role", user.Role)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Utilisateur créé avec succès",
		"user":    user,
	})
}

// Login verifies the credentials and issues a 24h token. The unknown-email
// and wrong-password paths answer with the same message.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides", "error": err.Error()})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Email ou mot de passe incorrect"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Email ou mot de passe incorrect"})
		return
	}

	token, err := h.Auth.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la connexion", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Connexion réussie",
		"user":    user,
		"token":   token,
	})
}

// List returns every account; gated to admins by the route chain.
func (h *UserHandler) List(c *gin.Context) {
	var users []models.User
	if err := h.DB.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération des utilisateurs", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Utilisateurs récupérés avec succès",
		"users":   users,
	})
}

// Get returns one account; gated to owner-or-admin by the route chain.
func (h *UserHandler) Get(c *gin.Context) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Utilisateur non trouvé"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Utilisateur récupéré avec succès",
		"user":    user,
	})
}

type UpdateUserRequest struct {
	Username *string          `json:"username" binding:"omitempty,min=1,max=255"`
	Email    *string          `json:"email" binding:"omitempty,email,max=255"`
	Password *string          `json:"password" binding:"omitempty,min=6,max=255"`
	Role     *models.UserRole `json:"role" binding:"omitempty,oneof=user admin"`
}

// Update applies only the supplied fields. Role changes stay admin-only even
// when the target is the subject itself; a supplied password is re-hashed.
func (h *UserHandler) Update(c *gin.Context) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Utilisateur non trouvé"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Role != nil {
		subject, _ := middleware.CurrentUser(c)
		if subject == nil || subject.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"message": "Seuls les administrateurs peuvent modifier les rôles"})
			return
		}
		updates["role"] = string(*req.Role)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour de l'utilisateur", "error": err.Error()})
			return
		}
		updates["password_hash"] = string(hash)
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Un utilisateur avec cet email ou ce nom d'utilisateur existe déjà"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour de l'utilisateur", "error": err.Error()})
			return
		}
		if err := h.DB.First(&user, user.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour de l'utilisateur", "error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Utilisateur mis à jour avec succès",
		"user":    user,
	})
}

// Delete removes one account; gated to owner-or-admin by the route chain.
func (h *UserHandler) Delete(c *gin.Context) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Utilisateur non trouvé"})
		return
	}
	if err := h.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la suppression de l'utilisateur", "error": err.Error()})
		return
	}
	h.Log.Info("user deleted", "user_id", user.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Utilisateur supprimé avec succès"})
}
