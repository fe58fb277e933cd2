package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CartIDKey is the gin context key the cart id is stored under.
	CartIDKey = "cart_id"

	// CartIDHeader carries the cart id on requests and responses. A client
	// without one gets a freshly minted id back and must echo it on
	// subsequent requests.
	CartIDHeader = "X-Cart-ID"
)

// CartSession resolves the anonymous cart session for storefront routes.
// There is no authenticated principal; the cart id is the only identity.
func CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID := c.GetHeader(CartIDHeader)
		if cartID == "" {
			cartID = uuid.New().String()
		}

		c.Set(CartIDKey, cartID)
		c.Header(CartIDHeader, cartID)
		c.Next()
	}
}

// CartID returns the cart id resolved by CartSession.
func CartID(c *gin.Context) string {
	id, _ := c.Get(CartIDKey)
	cartID, _ := id.(string)
	return cartID
}
