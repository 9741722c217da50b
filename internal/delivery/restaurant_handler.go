package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/soujanya-a-n1/FoodSphere/internal/domain"
)

type RestaurantHandler struct {
	useCase domain.CatalogUseCase
	log     *logrus.Logger
}

func NewRestaurantHandler(uc domain.CatalogUseCase, logger *logrus.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		useCase: uc,
		log:     logger,
	}
}

// RegisterRoutes mounts catalog reads publicly and catalog mutations on the
// authenticated group.
func (h *RestaurantHandler) RegisterRoutes(public, protected gin.IRouter) {
	public.GET("/restaurants", h.ListRestaurants)
	public.GET("/restaurants/:id", h.GetRestaurant)
	public.GET("/restaurants/:id/menu", h.GetMenu)

	protected.POST("/restaurants", h.CreateRestaurant)
	protected.PUT("/restaurants/:id", h.UpdateRestaurant)
	protected.POST("/restaurants/:id/menu", h.AddMenuItem)
}

func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.useCase.ListRestaurants(c.Request.Context())
	if err != nil {
		h.log.Errorf("Handler: Failed to list restaurants: %v", err)
		respondError(c, mapErrorToStatus(err), "Failed to retrieve restaurants", err)
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid restaurant ID format", err)
		return
	}

	restaurant, err := h.useCase.GetRestaurant(c.Request.Context(), id)
	if err != nil {
		respondError(c, mapErrorToStatus(err), "Failed to retrieve restaurant", err)
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

type createRestaurantRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Cuisine     string `json:"cuisine" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
}

func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	var req createRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	restaurant, err := h.useCase.CreateRestaurant(c.Request.Context(), &domain.Restaurant{
		Name:        req.Name,
		Description: req.Description,
		Cuisine:     req.Cuisine,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
	})
	if err != nil {
		h.log.Warnf("Handler: Failed to create restaurant '%s': %v", req.Name, err)
		respondError(c, mapErrorToStatus(err), "Failed to create restaurant", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Restaurant created successfully",
		"restaurant": restaurant,
	})
}

func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid restaurant ID format", err)
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	restaurant, err := h.useCase.UpdateRestaurant(c.Request.Context(), id, updates)
	if err != nil {
		respondError(c, mapErrorToStatus(err), "Failed to update restaurant", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Restaurant updated successfully",
		"restaurant": restaurant,
	})
}

func (h *RestaurantHandler) GetMenu(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid restaurant ID format", err)
		return
	}

	menu, err := h.useCase.GetMenu(c.Request.Context(), id)
	if err != nil {
		respondError(c, mapErrorToStatus(err), "Failed to retrieve menu", err)
		return
	}

	c.JSON(http.StatusOK, menu)
}

type addMenuItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
}

func (h *RestaurantHandler) AddMenuItem(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid restaurant ID format", err)
		return
	}

	var req addMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	item, err := h.useCase.AddMenuItem(c.Request.Context(), &domain.MenuItem{
		RestaurantID: id,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
	})
	if err != nil {
		h.log.Warnf("Handler: Failed to add menu item to restaurant %d: %v", id, err)
		respondError(c, mapErrorToStatus(err), "Failed to add menu item", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Menu item added successfully",
		"menu_item": item,
	})
}
