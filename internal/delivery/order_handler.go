package delivery

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/soujanya-a-n1/FoodSphere/internal/domain"
)

type OrderHandler struct {
	useCase domain.OrderUseCase
	log     *logrus.Logger
}

func NewOrderHandler(uc domain.OrderUseCase, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		useCase: uc,
		log:     logger,
	}
}

// RegisterRoutes mounts the order endpoints on an authenticated router
// group.
func (h *OrderHandler) RegisterRoutes(router gin.IRouter) {
	orders := router.Group("/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id/status", h.UpdateOrderStatus)
		orders.PUT("/:id/cancel", h.CancelOrder)
	}
}

type createOrderItemRequest struct {
	MenuItemID int64           `json:"menu_item_id" binding:"required,gt=0"`
	Quantity   int             `json:"quantity" binding:"required,gte=1"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

type createOrderRequest struct {
	RestaurantID    int64                    `json:"restaurant_id" binding:"required,gt=0"`
	Items           []createOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress string                   `json:"delivery_address" binding:"required"`
	PaymentMethod   string                   `json:"payment_method" binding:"required"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "User identification missing", nil)
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Handler: Failed to bind create order request (user %d): %v", userID, err)
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		})
	}

	order, err := h.useCase.CreateOrder(c.Request.Context(), domain.CreateOrderInput{
		UserID:          userID,
		RestaurantID:    req.RestaurantID,
		Items:           items,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		h.log.Errorf("Handler: Failed to create order for user %d: %v", userID, err)
		respondError(c, mapErrorToStatus(err), "Failed to create order", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "User identification missing", nil)
		return
	}

	orders, err := h.useCase.ListUserOrders(c.Request.Context(), userID)
	if err != nil {
		h.log.Errorf("Handler: Failed to list orders for user %d: %v", userID, err)
		respondError(c, mapErrorToStatus(err), "Failed to retrieve orders", err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order ID format", err)
		return
	}

	order, err := h.useCase.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Handler: Failed to get order %d: %v", id, err)
		respondError(c, mapErrorToStatus(err), "Failed to retrieve order", err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order ID format", err)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	status, err := domain.ToOrderStatus(req.Status)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	order, err := h.useCase.UpdateOrderStatus(c.Request.Context(), id, status)
	if err != nil {
		h.log.Warnf("Handler: Failed to update status for order %d: %v", id, err)
		respondError(c, mapErrorToStatus(err), "Failed to update order status", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"order":   order,
	})
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order ID format", err)
		return
	}

	order, err := h.useCase.CancelOrder(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Handler: Failed to cancel order %d: %v", id, err)
		respondError(c, mapErrorToStatus(err), "Failed to cancel order", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled successfully",
		"order":   order,
	})
}

func parseIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id parameter '%s'", c.Param("id"))
	}
	return id, nil
}
