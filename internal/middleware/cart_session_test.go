package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"upaheart-backend/internal/middleware"
)

func setupRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)

	var seen string
	router := gin.New()
	router.Use(middleware.CartSession())
	router.GET("/probe", func(c *gin.Context) {
		seen = middleware.CartID(c)
		c.Status(http.StatusOK)
	})
	return router, &seen
}

func TestCartSession_MintsIDWhenHeaderAbsent(t *testing.T) {
	router, seen := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	minted := w.Header().Get(middleware.CartIDHeader)
	assert.NotEmpty(t, minted)
	_, err := uuid.Parse(minted)
	assert.NoError(t, err)
	assert.Equal(t, minted, *seen)
}

func TestCartSession_EchoesExistingID(t *testing.T) {
	router, seen := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(middleware.CartIDHeader, "cart-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, "cart-123", w.Header().Get(middleware.CartIDHeader))
	assert.Equal(t, "cart-123", *seen)
}
