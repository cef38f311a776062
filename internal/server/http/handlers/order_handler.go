package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/query"
	"github.com/nlenjibi/storefront/internal/server/http/dto"
	"github.com/nlenjibi/storefront/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.facade.Order(c.Request.Context(), orderID, CurrentCaller(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// List handles GET /api/orders. Sparse filters arrive as query parameters;
// absent ones stay nil and compile to no condition.
func (h *OrderHandler) List(c *gin.Context) {
	filter := orderFilterFromQuery(c)
	paged, err := h.facade.Orders(c.Request.Context(), filter, pageFromQuery(c), CurrentCaller(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPagedOrders(paged))
}

// Transition returns a handler applying one named state-machine action, so
// each action gets its own route without per-action handler types.
func (h *OrderHandler) Transition(action usecase.TransitionAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := pathID(c, "id")
		if !ok {
			return
		}

		var req dto.TransitionRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.Status(http.StatusBadRequest)
				return
			}
		}

		params := usecase.TransitionParams{
			TrackingNumber: req.TrackingNumber,
			Carrier:        req.Carrier,
			Reason:         req.Reason,
			TransactionID:  req.TransactionID,
		}
		if req.Amount != nil {
			params.Amount = *req.Amount
		}

		order, err := h.facade.Transition(c.Request.Context(), orderID, action, params, CurrentCaller(c))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, toOrderResponse(order))
	}
}

// AddItem handles POST /api/orders/:id/items.
func (h *OrderHandler) AddItem(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.OrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.AddOrderItem(c.Request.Context(), orderID, req.ProductID, req.Quantity, CurrentCaller(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// UpdateItem handles PUT /api/orders/:id/items/:productID.
func (h *OrderHandler) UpdateItem(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	productID, ok := pathID(c, "productID")
	if !ok {
		return
	}

	var req dto.OrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.UpdateOrderItem(c.Request.Context(), orderID, productID, req.Quantity, CurrentCaller(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// RemoveItem handles DELETE /api/orders/:id/items/:productID.
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	productID, ok := pathID(c, "productID")
	if !ok {
		return
	}

	order, err := h.facade.RemoveOrderItem(c.Request.Context(), orderID, productID, CurrentCaller(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Delete handles DELETE /api/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.facade.DeleteOrder(c.Request.Context(), orderID, CurrentCaller(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func orderFilterFromQuery(c *gin.Context) query.OrderFilter {
	var filter query.OrderFilter

	if v := c.Query("status"); v != "" {
		status := model.OrderStatus(v)
		filter.Status = &status
	}
	if v := c.Query("payment_status"); v != "" {
		status := model.PaymentStatus(v)
		filter.PaymentStatus = &status
	}
	if v := c.Query("number"); v != "" {
		filter.Number = &v
	}
	if v := c.Query("search"); v != "" {
		filter.Search = &v
	}
	if v := c.Query("user_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.UserID = &id
		}
	}
	if v := c.Query("min_total"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MinTotal = &d
		}
	}
	if v := c.Query("max_total"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MaxTotal = &d
		}
	}
	return filter
}
