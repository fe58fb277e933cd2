package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"upaheart-backend/internal/cart"
	"upaheart-backend/internal/catalog"
	"upaheart-backend/internal/middleware"
	"upaheart-backend/internal/models"
)

// maxCustomizationFileSize bounds staged customization images (16MB).
const maxCustomizationFileSize = 16 << 20

type CartHandler struct {
	carts   *cart.Store
	catalog *catalog.Catalog
}

func NewCartHandler(carts *cart.Store, cat *catalog.Catalog) *CartHandler {
	return &CartHandler{carts: carts, catalog: cat}
}

func (h *CartHandler) cartResponse(c *models.Cart) models.CartResponse {
	return models.CartResponse{
		Cart:         c,
		Total:        c.Total(),
		Count:        c.Count(),
		SaleDiscount: c.SaleDiscount(),
	}
}

// GetCart godoc
// @Summary     Get the cart
// @Description Returns the cart for the current session with derived totals
// @Tags        cart
// @Produce     json
// @Param       X-Cart-ID header string false "Cart session id"
// @Success     200 {object} models.CartResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	crt, err := h.carts.Get(c.Request.Context(), middleware.CartID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load cart", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.cartResponse(crt))
}

// AddItem godoc
// @Summary     Add a product to the cart
// @Description Appends a new cart line for the product. Adding the same product twice creates two distinct lines.
// @Tags        cart
// @Accept      json
// @Produce     json
// @Param       request body models.AddItemRequest true "Product to add"
// @Success     201 {object} models.CartResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	product, ok := h.catalog.ByID(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "product not found"})
		return
	}

	cartID := middleware.CartID(c)
	if _, err := h.carts.AddItem(c.Request.Context(), cartID, product); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to add item", Message: err.Error()})
		return
	}

	crt, err := h.carts.Get(c.Request.Context(), cartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load cart", Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, h.cartResponse(crt))
}

// RemoveItem godoc
// @Summary     Remove a cart line
// @Description Removes exactly the line with the given id; removing an absent line is a no-op
// @Tags        cart
// @Produce     json
// @Param       item_id path string true "Cart line id"
// @Success     200 {object} models.CartResponse
// @Router      /cart/items/{item_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID := middleware.CartID(c)
	if err := h.carts.RemoveItem(c.Request.Context(), cartID, c.Param("item_id")); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to remove item", Message: err.Error()})
		return
	}

	crt, err := h.carts.Get(c.Request.Context(), cartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load cart", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.cartResponse(crt))
}

// UpdateItem godoc
// @Summary     Update a cart line
// @Description Shallow-merges the provided fields into a line. Used to record a completed upload's URL.
// @Tags        cart
// @Accept      json
// @Produce     json
// @Param       item_id path string true "Cart line id"
// @Param       request body models.UpdateItemRequest true "Fields to merge"
// @Success     200 {object} models.CartResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /cart/items/{item_id} [patch]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	cartID := middleware.CartID(c)
	err := h.carts.UpdateItem(c.Request.Context(), cartID, c.Param("item_id"), req)
	if errors.Is(err, cart.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "cart item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update item", Message: err.Error()})
		return
	}

	crt, err := h.carts.Get(c.Request.Context(), cartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load cart", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.cartResponse(crt))
}

// AttachFile godoc
// @Summary     Stage a customization image on a cart line
// @Description Attaches the uploaded file to the line in memory and clears any previously stored URL, forcing re-upload before checkout can proceed. Staged files are session-scoped and lost on restart.
// @Tags        cart
// @Accept      multipart/form-data
// @Produce     json
// @Param       item_id path string true "Cart line id"
// @Param       file formData file true "Customization image"
// @Success     200 {object} models.CartResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /cart/items/{item_id}/file [post]
func (h *CartHandler) AttachFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no file uploaded", Message: err.Error()})
		return
	}
	if fileHeader.Size > maxCustomizationFileSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file too large"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to open file", Message: err.Error()})
		return
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read file", Message: err.Error()})
		return
	}

	staged := &models.StagedFile{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}

	cartID := middleware.CartID(c)
	err = h.carts.StageCustomizationFile(c.Request.Context(), cartID, c.Param("item_id"), staged)
	if errors.Is(err, cart.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "cart item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to stage file", Message: err.Error()})
		return
	}

	crt, err := h.carts.Get(c.Request.Context(), cartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load cart", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.cartResponse(crt))
}

// ClearCart godoc
// @Summary     Empty the cart
// @Tags        cart
// @Produce     json
// @Success     200 {object} models.CartResponse
// @Router      /cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	cartID := middleware.CartID(c)
	if err := h.carts.Clear(c.Request.Context(), cartID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to clear cart", Message: err.Error()})
		return
	}

	crt, err := h.carts.Get(c.Request.Context(), cartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load cart", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.cartResponse(crt))
}
