package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/query"
	"github.com/nlenjibi/storefront/internal/server/http/dto"
)

// AdminHandler serves admin-only order views and statistics.
type AdminHandler struct {
	facade OrderFacade
	users  CatalogFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade OrderFacade, users CatalogFacade) *AdminHandler {
	return &AdminHandler{facade: facade, users: users}
}

// Orders handles GET /api/admin/orders. An optional "view" parameter selects
// one of the named shortcuts; otherwise the sparse filter applies.
func (h *AdminHandler) Orders(c *gin.Context) {
	caller := CurrentCaller(c)
	page := pageFromQuery(c)

	if view := c.Query("view"); view != "" {
		paged, err := h.facade.OrderView(c.Request.Context(), view, page, caller)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, toPagedOrders(paged))
		return
	}

	paged, err := h.facade.Orders(c.Request.Context(), orderFilterFromQuery(c), page, caller)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPagedOrders(paged))
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.facade.OrderStats(c.Request.Context(), CurrentCaller(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	byStatus := make(map[string]int64, len(stats.ByStatus))
	for status, count := range stats.ByStatus {
		byStatus[string(status)] = count
	}
	c.JSON(http.StatusOK, dto.StatsResponse{
		TotalOrders: stats.TotalOrders,
		ByStatus:    byStatus,
		Revenue:     stats.Revenue,
	})
}

// Users handles GET /api/admin/users.
func (h *AdminHandler) Users(c *gin.Context) {
	var filter query.UserFilter
	if v := c.Query("email"); v != "" {
		filter.Email = &v
	}
	if v := c.Query("role"); v != "" {
		role := model.Role(v)
		filter.Role = &role
	}

	paged, err := h.users.Users(c.Request.Context(), filter, pageFromQuery(c), CurrentCaller(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	users := make([]dto.UserResponse, 0, len(paged.Items))
	for i := range paged.Items {
		users = append(users, toUserResponse(&paged.Items[i]))
	}
	c.JSON(http.StatusOK, dto.PagedResponse[dto.UserResponse]{
		Items: users, Total: paged.Total, Limit: paged.Limit, Offset: paged.Offset,
	})
}
