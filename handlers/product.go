// File: handlers/product.go
package handlers

import (
	"net/http"

	"dreamdecol/models"
	"dreamdecol/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	Service catalog.CatalogService
}

func NewProductHandler(svc catalog.CatalogService) *ProductHandler {
	return &ProductHandler{Service: svc}
}

// ListProductsHandler serves the public catalog with search, category filter, sort and paging.
func (h *ProductHandler) ListProductsHandler(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 0)
	products, pagination, err := h.Service.List(c.Request.Context(), models.ProductQuery{
		Search:   c.Query("q"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products, "pagination": pagination})
}

func (h *ProductHandler) FeaturedProductsHandler(c *gin.Context) {
	products, err := h.Service.Featured(c.Request.Context())
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (h *ProductHandler) CategoriesHandler(c *gin.Context) {
	categories, err := h.Service.Categories(c.Request.Context())
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
}

func (h *ProductHandler) GetProductHandler(c *gin.Context) {
	product, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

func (h *ProductHandler) RelatedProductsHandler(c *gin.Context) {
	products, err := h.Service.Related(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (h *ProductHandler) AdminListProductsHandler(c *gin.Context) {
	products, err := h.Service.AdminList(c.Request.Context())
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(products), "products": products})
}

func (h *ProductHandler) CreateProductHandler(c *gin.Context) {
	var input catalog.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, bindingError(err, "Validation error"), "")
		return
	}
	product, err := h.Service.Create(c.Request.Context(), input)
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	getLogger(c).Info("Product created", zap.String("productId", product.ID.Hex()), zap.String("sku", product.SKU))
	c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
}

func (h *ProductHandler) UpdateProductHandler(c *gin.Context) {
	var input catalog.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, bindingError(err, "Validation error"), "")
		return
	}
	product, err := h.Service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		fail(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

func (h *ProductHandler) DeleteProductHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "Server error")
		return
	}
	getLogger(c).Info("Product deleted", zap.String("productId", c.Param("id")))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}
