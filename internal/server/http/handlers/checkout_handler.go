package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nlenjibi/storefront/internal/server/http/dto"
	"github.com/nlenjibi/storefront/internal/usecase"
)

// CheckoutHandler turns carts into orders.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Create handles POST /api/checkout.
func (h *CheckoutHandler) Create(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	cartID, err := uuid.Parse(req.CartID)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	caller := CurrentCaller(c)
	order, err := h.facade.Checkout(c.Request.Context(), cartID, caller.UserID, usecase.CheckoutOverrides{
		ShippingAddress: req.ShippingAddress,
		ShippingMethod:  req.ShippingMethod,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
		TaxRate:         req.TaxRate,
		ShippingCost:    req.ShippingCost,
		Discount:        req.Discount,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}
