package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"upaheart-backend/internal/cart"
	"upaheart-backend/internal/catalog"
	"upaheart-backend/internal/handlers"
	"upaheart-backend/internal/middleware"
	"upaheart-backend/internal/models"
)

func cartRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := cart.NewStore(cart.NewMemorySnapshots())
	h := handlers.NewCartHandler(store, catalog.New())

	router := gin.New()
	router.Use(middleware.CartSession())
	router.GET("/cart", h.GetCart)
	router.DELETE("/cart", h.ClearCart)
	router.POST("/cart/items", h.AddItem)
	router.DELETE("/cart/items/:item_id", h.RemoveItem)
	router.PATCH("/cart/items/:item_id", h.UpdateItem)
	router.POST("/cart/items/:item_id/file", h.AttachFile)
	return router
}

func doCart(router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.CartIDHeader, "cart-test")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func cartFromBody(t *testing.T, w *httptest.ResponseRecorder) models.CartResponse {
	t.Helper()
	var resp models.CartResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetCart_EmptyByDefault(t *testing.T) {
	router := cartRouter()

	w := doCart(router, "GET", "/cart", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := cartFromBody(t, w)
	assert.Equal(t, 0, resp.Count)
	assert.Equal(t, 0.0, resp.Total)
}

func TestAddItem(t *testing.T) {
	router := cartRouter()

	w := doCart(router, "POST", "/cart/items", models.AddItemRequest{ProductID: "p2"})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := cartFromBody(t, w)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 850.0, resp.Total)
}

func TestAddItem_SameProductTwiceMakesTwoLines(t *testing.T) {
	router := cartRouter()

	doCart(router, "POST", "/cart/items", models.AddItemRequest{ProductID: "p2"})
	w := doCart(router, "POST", "/cart/items", models.AddItemRequest{ProductID: "p2"})

	resp := cartFromBody(t, w)
	assert.Equal(t, 2, resp.Count)
	assert.NotEqual(t, resp.Cart.Items[0].CartItemID, resp.Cart.Items[1].CartItemID)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	router := cartRouter()

	w := doCart(router, "POST", "/cart/items", models.AddItemRequest{ProductID: "nope"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "product not found")
}

func TestRemoveItem(t *testing.T) {
	router := cartRouter()

	w := doCart(router, "POST", "/cart/items", models.AddItemRequest{ProductID: "p2"})
	itemID := cartFromBody(t, w).Cart.Items[0].CartItemID

	w = doCart(router, "DELETE", "/cart/items/"+itemID, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, cartFromBody(t, w).Count)
}

func TestRemoveItem_AbsentLineIsNoOp(t *testing.T) {
	router := cartRouter()

	doCart(router, "POST", "/cart/items", models.AddItemRequest{ProductID: "p2"})
	w := doCart(router, "DELETE", "/cart/items/absent", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, cartFromBody(t, w).Count)
}

func TestUpdateItem_Quantity(t *testing.T) {
	router := cartRouter()

	w := doCart(router, "POST", "/cart/items", models.AddItemRequest{ProductID: "p2"})
	itemID := cartFromBody(t, w).Cart.Items[0].CartItemID

	qty := 3
	w = doCart(router, "PATCH", "/cart/items/"+itemID, models.UpdateItemRequest{Quantity: &qty})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := cartFromBody(t, w)
	assert.Equal(t, 3, resp.Cart.Items[0].Quantity)
	// Displayed total is per-line price, independent of quantity.
	assert.Equal(t, 850.0, resp.Total)
}

func TestUpdateItem_NotFound(t *testing.T) {
	router := cartRouter()

	doCart(router, "POST", "/cart/items", models.AddItemRequest{ProductID: "p2"})
	qty := 2
	w := doCart(router, "PATCH", "/cart/items/absent", models.UpdateItemRequest{Quantity: &qty})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "cart item not found")
}

func TestAttachFile(t *testing.T) {
	router := cartRouter()

	w := doCart(router, "POST", "/cart/items", models.AddItemRequest{ProductID: "p1"})
	itemID := cartFromBody(t, w).Cart.Items[0].CartItemID

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "memory.jpg")
	part.Write([]byte("image-bytes"))
	mw.Close()

	req, _ := http.NewRequest("POST", "/cart/items/"+itemID+"/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(middleware.CartIDHeader, "cart-test")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	// Staged bytes never appear in responses.
	assert.NotContains(t, rec.Body.String(), "image-bytes")
}

func TestAttachFile_NoFile(t *testing.T) {
	router := cartRouter()

	w := doCart(router, "POST", "/cart/items", models.AddItemRequest{ProductID: "p1"})
	itemID := cartFromBody(t, w).Cart.Items[0].CartItemID

	w = doCart(router, "POST", "/cart/items/"+itemID+"/file", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no file uploaded")
}

func TestClearCart(t *testing.T) {
	router := cartRouter()

	doCart(router, "POST", "/cart/items", models.AddItemRequest{ProductID: "p2"})
	doCart(router, "POST", "/cart/items", models.AddItemRequest{ProductID: "p3"})

	w := doCart(router, "DELETE", "/cart", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, cartFromBody(t, w).Count)
}

func TestCartIsolationBetweenSessions(t *testing.T) {
	router := cartRouter()

	doCart(router, "POST", "/cart/items", models.AddItemRequest{ProductID: "p2"})

	req, _ := http.NewRequest("GET", "/cart", nil)
	req.Header.Set(middleware.CartIDHeader, "other-cart")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 0, cartFromBody(t, w).Count)
}
