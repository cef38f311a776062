package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/query"
	"github.com/nlenjibi/storefront/internal/server/http/dto"
)

// CatalogHandler serves public product, category, and review reads.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Product handles GET /api/products/:id.
func (h *CatalogHandler) Product(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

// Products handles GET /api/products.
func (h *CatalogHandler) Products(c *gin.Context) {
	var filter query.ProductFilter
	if v := c.Query("name"); v != "" {
		filter.Name = &v
	}
	if v := c.Query("category_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.CategoryID = &id
		}
	}
	if v := c.Query("min_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MinPrice = &d
		}
	}
	if v := c.Query("max_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MaxPrice = &d
		}
	}
	if v := c.Query("in_stock"); v != "" {
		inStock := v == "true" || v == "1"
		filter.InStock = &inStock
	}

	paged, err := h.facade.Products(c.Request.Context(), filter, pageFromQuery(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	products := make([]dto.ProductResponse, 0, len(paged.Items))
	for i := range paged.Items {
		products = append(products, toProductResponse(&paged.Items[i]))
	}
	c.JSON(http.StatusOK, dto.PagedResponse[dto.ProductResponse]{
		Items: products, Total: paged.Total, Limit: paged.Limit, Offset: paged.Offset,
	})
}

// Categories handles GET /api/categories.
func (h *CatalogHandler) Categories(c *gin.Context) {
	var filter query.CategoryFilter
	if v := c.Query("name"); v != "" {
		filter.Name = &v
	}
	if v := c.Query("parent_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.ParentID = &id
		}
	}

	paged, err := h.facade.Categories(c.Request.Context(), filter, pageFromQuery(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	categories := make([]dto.CategoryResponse, 0, len(paged.Items))
	for _, cat := range paged.Items {
		resp := dto.CategoryResponse{ID: cat.ID, Name: cat.Name}
		if cat.ParentID != nil {
			resp.ParentID = *cat.ParentID
		}
		categories = append(categories, resp)
	}
	c.JSON(http.StatusOK, dto.PagedResponse[dto.CategoryResponse]{
		Items: categories, Total: paged.Total, Limit: paged.Limit, Offset: paged.Offset,
	})
}

// Reviews handles GET /api/products/:id/reviews.
func (h *CatalogHandler) Reviews(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	filter := query.ReviewFilter{ProductID: &productID}
	if v := c.Query("min_rating"); v != "" {
		if rating, err := strconv.Atoi(v); err == nil {
			filter.MinRating = &rating
		}
	}

	paged, err := h.facade.Reviews(c.Request.Context(), filter, pageFromQuery(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	reviews := make([]dto.ReviewResponse, 0, len(paged.Items))
	for _, review := range paged.Items {
		reviews = append(reviews, dto.ReviewResponse{
			ID:        review.ID,
			ProductID: review.ProductID,
			UserID:    review.UserID,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, dto.PagedResponse[dto.ReviewResponse]{
		Items: reviews, Total: paged.Total, Limit: paged.Limit, Offset: paged.Offset,
	})
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		Available:   p.Available(),
	}
}
