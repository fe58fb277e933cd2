package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"upaheart-backend/internal/catalog"
	"upaheart-backend/internal/models"
)

type ProductsHandler struct {
	catalog *catalog.Catalog
}

func NewProductsHandler(cat *catalog.Catalog) *ProductsHandler {
	return &ProductsHandler{catalog: cat}
}

// ListProducts godoc
// @Summary     List catalog products
// @Description Returns the full static product catalog
// @Tags        products
// @Produce     json
// @Success     200 {object} models.ProductListResponse
// @Router      /products [get]
func (h *ProductsHandler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, models.ProductListResponse{Products: h.catalog.All()})
}

// GetProduct godoc
// @Summary     Get a product
// @Description Returns a single catalog product by id
// @Tags        products
// @Produce     json
// @Param       product_id path string true "Product ID"
// @Success     200 {object} models.Product
// @Failure     404 {object} models.ErrorResponse
// @Router      /products/{product_id} [get]
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	product, ok := h.catalog.ByID(c.Param("product_id"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}
