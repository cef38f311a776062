package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/nlenjibi/storefront/internal/domain/errors"
	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/query"
	"github.com/nlenjibi/storefront/internal/server/http/dto"
	"github.com/nlenjibi/storefront/internal/server/http/middleware"
	"github.com/nlenjibi/storefront/internal/usecase"
)

// CurrentCaller extracts the authenticated caller from the context.
func CurrentCaller(c *gin.Context) usecase.Caller {
	val, ok := c.Get(middleware.CallerContextKey)
	if !ok {
		return usecase.Caller{}
	}
	caller, _ := val.(usecase.Caller)
	return caller
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func pageFromQuery(c *gin.Context) query.Page {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return query.Page{Limit: limit, Offset: offset}
}

// statusForError maps domain errors to HTTP statuses shared by all handlers.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		c.Status(status)
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			TotalPrice:  item.TotalPrice,
		})
	}
	return dto.OrderResponse{
		ID:              order.ID,
		Number:          order.Number,
		Status:          string(order.Status),
		PaymentStatus:   string(order.PaymentStatus),
		PaymentMethod:   order.PaymentMethod,
		Items:           items,
		Subtotal:        order.Subtotal,
		TaxAmount:       order.TaxAmount,
		ShippingCost:    order.ShippingCost,
		DiscountAmount:  order.DiscountAmount,
		CouponDiscount:  order.CouponDiscount,
		Total:           order.Total,
		RefundAmount:    order.RefundAmount,
		ShippingAddress: order.ShippingAddress,
		ShippingMethod:  order.ShippingMethod,
		TrackingNumber:  order.TrackingNumber,
		Carrier:         order.Carrier,
		CreatedAt:       order.CreatedAt,
		ShippedAt:       order.ShippedAt,
		DeliveredAt:     order.DeliveredAt,
		CancelledAt:     order.CancelledAt,
		PaidAt:          order.PaidAt,
	}
}

func toPagedOrders(paged *query.Paged[model.Order]) dto.PagedResponse[dto.OrderResponse] {
	items := make([]dto.OrderResponse, 0, len(paged.Items))
	for i := range paged.Items {
		items = append(items, toOrderResponse(&paged.Items[i]))
	}
	return dto.PagedResponse[dto.OrderResponse]{
		Items: items, Total: paged.Total, Limit: paged.Limit, Offset: paged.Offset,
	}
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{ID: user.ID, Email: user.Email, Name: user.Name, Role: string(user.Role)}
}
