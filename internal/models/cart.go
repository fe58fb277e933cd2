package models

import "time"

// StagedFile is a customization image the shopper has selected but that has
// not necessarily been stored yet. It lives in process memory only and is
// never included in persisted cart snapshots, so a rehydrated cart loses
// in-progress selections by contract.
type StagedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CartItem is one line in a cart. Adding the same product twice produces two
// lines with distinct CartItemIDs; lines are never merged.
type CartItem struct {
	Product

	CartItemID           string      `json:"cartItemId"`
	Quantity             int         `json:"quantity"`
	CustomizationFile    *StagedFile `json:"-"`
	CustomizationFileURL string      `json:"customizationFileUrl,omitempty"`
}

// UploadPending reports whether this line still needs its customization image
// stored before payment. A line with a stored URL is done regardless of any
// staged file.
func (i CartItem) UploadPending() bool {
	return i.IsCustomizable && i.CustomizationFileURL == ""
}

type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Total is the displayed subtotal: the sum of each line's price. Quantity is
// tracked per line but deliberately not factored in here, matching the
// storefront's display arithmetic.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price
	}
	return total
}

// Count is the number of lines in the cart.
func (c *Cart) Count() int {
	return len(c.Items)
}

// SaleDiscount sums the difference between each line's reference price and
// its current price.
func (c *Cart) SaleDiscount() float64 {
	var discount float64
	for _, item := range c.Items {
		if item.OriginalPrice > item.Price {
			discount += item.OriginalPrice - item.Price
		}
	}
	return discount
}

// TotalQuantity sums quantity across all lines. Used as the coupon
// multiplier.
func (c *Cart) TotalQuantity() int {
	var qty int
	for _, item := range c.Items {
		qty += item.Quantity
	}
	return qty
}

// HasCustomizable reports whether any line requires a personalization upload.
// It decides whether checkout includes the Upload step.
func (c *Cart) HasCustomizable() bool {
	for _, item := range c.Items {
		if item.IsCustomizable {
			return true
		}
	}
	return false
}

// Item returns a pointer to the line with the given id, or nil.
func (c *Cart) Item(cartItemID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].CartItemID == cartItemID {
			return &c.Items[i]
		}
	}
	return nil
}
