package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"foodexpress-api/models"
	"foodexpress-api/query"
)

// restaurantSortFields is the allow-list for GET /restaurants.
var restaurantSortFields = []string{"name", "address", "created_at"}

type RestaurantHandler struct {
	DB  *gorm.DB
	Log *slog.Logger
}

func NewRestaurantHandler(db *gorm.DB, log *slog.Logger) *RestaurantHandler {
	return &RestaurantHandler{DB: db, Log: log}
}

type CreateRestaurantRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Address      string `json:"address" binding:"required,max=500"`
	Phone        string `json:"phone" binding:"required,max=20"`
	OpeningHours string `json:"opening_hours" binding:"required,max=255"`
}

// Create persists a restaurant. Two restaurants may never share both name
// and address; the composite unique index backs the pre-check.
func (h *RestaurantHandler) Create(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides", "error": err.Error()})
		return
	}

	var existing models.Restaurant
	err := h.DB.Where("name = ? AND address = ?", req.Name, req.Address).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Un restaurant avec ce nom et cette adresse existe déjà"})
		return
	}

	restaurant := models.Restaurant{
		Name:         req.Name,
		Address:      req.Address,
		Phone:        req.Phone,
		OpeningHours: req.OpeningHours,
	}
	if err := h.DB.Create(&restaurant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Un restaurant avec ce nom et cette adresse existe déjà"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création du restaurant", "error": err.Error()})
		return
	}

	h.Log.Info("restaurant created", "restaurant_id", restaurant.ID, "name", restaurant.Name)
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Restaurant créé avec succès",
		"restaurant": restaurant,
	})
}

// List returns restaurants paginated and sorted, with an optional
// case-insensitive search over name and address.
func (h *RestaurantHandler) List(c *gin.Context) {
	params := query.ParseListParams(c, restaurantSortFields, "name")
	search := query.Search(c.Query("search"), "name", "address")

	var total int64
	if err := h.DB.Model(&models.Restaurant{}).Scopes(search).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération des restaurants", "error": err.Error()})
		return
	}

	var restaurants []models.Restaurant
	if err := h.DB.Scopes(search, params.Scope()).Find(&restaurants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération des restaurants", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Restaurants récupérés avec succès",
		"restaurants": restaurants,
		"pagination":  query.NewPagination(params, total),
	})
}

// Get returns a single restaurant by id.
func (h *RestaurantHandler) Get(c *gin.Context) {
	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant non trouvé"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Restaurant récupéré avec succès",
		"restaurant": restaurant,
	})
}

type UpdateRestaurantRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=255"`
	Address      *string `json:"address" binding:"omitempty,min=1,max=500"`
	Phone        *string `json:"phone" binding:"omitempty,min=1,max=20"`
	OpeningHours *string `json:"opening_hours" binding:"omitempty,min=1,max=255"`
}

// Update applies only the supplied fields.
func (h *RestaurantHandler) Update(c *gin.Context) {
	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant non trouvé"})
		return
	}

	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.OpeningHours != nil {
		updates["opening_hours"] = *req.OpeningHours
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&restaurant).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Un restaurant avec ce nom et cette adresse existe déjà"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour du restaurant", "error": err.Error()})
			return
		}
		if err := h.DB.First(&restaurant, restaurant.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour du restaurant", "error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Restaurant mis à jour avec succès",
		"restaurant": restaurant,
	})
}

// Delete removes a restaurant. Menus referencing it are left in place; stale
// references are an accepted condition.
func (h *RestaurantHandler) Delete(c *gin.Context) {
	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant non trouvé"})
		return
	}
	if err := h.DB.Delete(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la suppression du restaurant", "error": err.Error()})
		return
	}
	h.Log.Info("restaurant deleted", "restaurant_id", restaurant.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant supprimé avec succès"})
}
