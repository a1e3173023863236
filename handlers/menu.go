package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"foodexpress-api/models"
	"foodexpress-api/query"
)

// Sort allow-lists differ between the global listing and the per-restaurant
// one, as do their defaults (name vs category).
var (
	menuSortFields           = []string{"name", "price", "category", "created_at"}
	restaurantMenuSortFields = []string{"name", "price", "category"}
)

type MenuHandler struct {
	DB  *gorm.DB
	Log *slog.Logger
}

func NewMenuHandler(db *gorm.DB, log *slog.Logger) *MenuHandler {
	return &MenuHandler{DB: db, Log: log}
}

type CreateMenuRequest struct {
	RestaurantID uint                `json:"restaurant_id" binding:"required"`
	Name         string              `json:"name" binding:"required,max=255"`
	Description  string              `json:"description" binding:"required,max=1000"`
	Price        *float64            `json:"price" binding:"required,gte=0"`
	Category     models.MenuCategory `json:"category" binding:"required,oneof=entrée plat dessert boisson apéritif"`
}

// Create persists a menu item after checking that the referenced restaurant
// exists, then resolves the reference for the response.
func (h *MenuHandler) Create(c *gin.Context) {
	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides", "error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant non trouvé"})
		return
	}

	menu := models.Menu{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        *req.Price,
		Category:     req.Category,
	}
	if err := h.DB.Create(&menu).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création du menu", "error": err.Error()})
		return
	}
	menu.Restaurant = &restaurant

	h.Log.Info("menu created", "menu_id", menu.ID, "restaurant_id", menu.RestaurantID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Menu créé avec succès",
		"menu":    menu,
	})
}

// menuFilters builds the optional exact-match, price-range and search
// clauses for the global listing.
func menuFilters(c *gin.Context) []func(*gorm.DB) *gorm.DB {
	var filters []func(*gorm.DB) *gorm.DB

	if raw := c.Query("restaurant_id"); raw != "" {
		id, _ := strconv.ParseUint(raw, 10, 64)
		filters = append(filters, func(db *gorm.DB) *gorm.DB {
			return db.Where("restaurant_id = ?", id)
		})
	}
	if category := c.Query("category"); category != "" {
		filters = append(filters, func(db *gorm.DB) *gorm.DB {
			return db.Where("category = ?", category)
		})
	}

	minPrice := query.ParsePriceBound(c.Query("minPrice"))
	maxPrice := query.ParsePriceBound(c.Query("maxPrice"))
	if minPrice != nil || maxPrice != nil {
		filters = append(filters, query.PriceRange(minPrice, maxPrice))
	}

	if search := c.Query("search"); search != "" {
		filters = append(filters, query.Search(search, "name", "description"))
	}
	return filters
}

// List returns menu items across all restaurants, paginated, sorted and
// filtered, each with its restaurant reference resolved.
func (h *MenuHandler) List(c *gin.Context) {
	params := query.ParseListParams(c, menuSortFields, "name")
	filters := menuFilters(c)

	var total int64
	if err := h.DB.Model(&models.Menu{}).Scopes(filters...).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération des menus", "error": err.Error()})
		return
	}

	var menus []models.Menu
	err := h.DB.Preload("Restaurant").Scopes(append(filters, params.Scope())...).Find(&menus).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération des menus", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Menus récupérés avec succès",
		"menus":      menus,
		"pagination": query.NewPagination(params, total),
	})
}

// Get returns a single menu item with its restaurant resolved.
func (h *MenuHandler) Get(c *gin.Context) {
	var menu models.Menu
	if err := h.DB.Preload("Restaurant").First(&menu, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Menu non trouvé"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Menu récupéré avec succès",
		"menu":    menu,
	})
}

// ListByRestaurant returns the menu of one restaurant, verifying first that
// the restaurant exists.
func (h *MenuHandler) ListByRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, "id = ?", c.Param("restaurantId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant non trouvé"})
		return
	}

	params := query.ParseListParams(c, restaurantMenuSortFields, "category")
	filters := []func(*gorm.DB) *gorm.DB{
		func(db *gorm.DB) *gorm.DB { return db.Where("restaurant_id = ?", restaurant.ID) },
	}
	if category := c.Query("category"); category != "" {
		filters = append(filters, func(db *gorm.DB) *gorm.DB {
			return db.Where("category = ?", category)
		})
	}

	var total int64
	if err := h.DB.Model(&models.Menu{}).Scopes(filters...).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération des menus du restaurant", "error": err.Error()})
		return
	}

	var menus []models.Menu
	err := h.DB.Preload("Restaurant").Scopes(append(filters, params.Scope())...).Find(&menus).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération des menus du restaurant", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menus du restaurant récupérés avec succès",
		"restaurant": gin.H{
			"id":      restaurant.ID,
			"name":    restaurant.Name,
			"address": restaurant.Address,
		},
		"menus":      menus,
		"pagination": query.NewPagination(params, total),
	})
}

type UpdateMenuRequest struct {
	RestaurantID *uint                `json:"restaurant_id"`
	Name         *string              `json:"name" binding:"omitempty,min=1,max=255"`
	Description  *string              `json:"description" binding:"omitempty,min=1,max=1000"`
	Price        *float64             `json:"price" binding:"omitempty,gte=0"`
	Category     *models.MenuCategory `json:"category" binding:"omitempty,oneof=entrée plat dessert boisson apéritif"`
}

// Update applies only the supplied fields. Changing the restaurant reference
// re-checks that the new restaurant exists.
func (h *MenuHandler) Update(c *gin.Context) {
	var menu models.Menu
	if err := h.DB.First(&menu, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Menu non trouvé"})
		return
	}

	var req UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.RestaurantID != nil {
		var restaurant models.Restaurant
		if err := h.DB.First(&restaurant, *req.RestaurantID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant non trouvé"})
			return
		}
		updates["restaurant_id"] = *req.RestaurantID
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = string(*req.Category)
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&menu).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour du menu", "error": err.Error()})
			return
		}
	}
	if err := h.DB.Preload("Restaurant").First(&menu, menu.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour du menu", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu mis à jour avec succès",
		"menu":    menu,
	})
}

// Delete removes a menu item.
func (h *MenuHandler) Delete(c *gin.Context) {
	var menu models.Menu
	if err := h.DB.First(&menu, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Menu non trouvé"})
		return
	}
	if err := h.DB.Delete(&menu).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la suppression du menu", "error": err.Error()})
		return
	}
	h.Log.Info("menu deleted", "menu_id", menu.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Menu supprimé avec succès"})
}
