package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/ec-shop-api/internal/api/middleware"
	"github.com/example/ec-shop-api/internal/models"
	"github.com/example/ec-shop-api/internal/service"
	"github.com/example/ec-shop-api/internal/store"
)

// OrderHandlers serves checkout and order history.
type OrderHandlers struct {
	orders   store.OrderStore
	orderSvc *service.OrderService
}

func NewOrderHandlers(orders store.OrderStore, orderSvc *service.OrderService) *OrderHandlers {
	return &OrderHandlers{orders: orders, orderSvc: orderSvc}
}

// Create handles POST /api/orders.
func (h *OrderHandlers) Create(c *gin.Context) {
	var input service.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderSvc.Create(c.Request.Context(), middleware.GetUserID(c), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyOrder):
			respondError(c, http.StatusBadRequest, "Order must contain at least one item")
		case errors.Is(err, service.ErrInvalidPayment):
			respondError(c, http.StatusBadRequest, "Please select a valid payment method")
		default:
			respondStoreError(c, err, "Order")
		}
		return
	}

	respond(c, http.StatusCreated, gin.H{"order": order})
}

// Get handles GET /api/orders/:id. Users may only read their own
// orders; admins may read any.
func (h *OrderHandlers) Get(c *gin.Context) {
	order, err := h.orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Order")
		return
	}

	if order.UserID.Hex() != middleware.GetUserID(c) && !middleware.IsAdmin(c) {
		respondError(c, http.StatusForbidden, "Forbidden")
		return
	}

	respond(c, http.StatusOK, gin.H{"order": order})
}

// ListMine handles GET /api/orders/mine.
func (h *OrderHandlers) ListMine(c *gin.Context) {
	orders, err := h.orders.ListByUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondStoreError(c, err, "Orders")
		return
	}
	respond(c, http.StatusOK, gin.H{"orders": orders})
}

// ListAll handles GET /api/admin/orders.
func (h *OrderHandlers) ListAll(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Orders")
		return
	}
	respond(c, http.StatusOK, gin.H{"orders": orders})
}

// UpdateStatus handles PUT /api/admin/orders/:id/status.
func (h *OrderHandlers) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide a status")
		return
	}

	status, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Please select a valid order status")
		return
	}

	if err := h.orderSvc.UpdateStatus(c.Request.Context(), c.Param("id"), status); err != nil {
		if errors.Is(err, service.ErrAlreadyDelivered) {
			respondError(c, http.StatusBadRequest, "You have already delivered this order")
			return
		}
		respondStoreError(c, err, "Order")
		return
	}

	respond(c, http.StatusOK, gin.H{})
}
