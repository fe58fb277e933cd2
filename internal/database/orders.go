package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"upaheart-backend/internal/models"
)

// Client records payment-provider orders. The provider stays authoritative
// for charge state; these rows are the shop's own bookkeeping trail.
type Client struct {
	db *sql.DB
}

func NewClient(connectionString string) (*Client, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) InsertOrder(ctx context.Context, order *models.OrderResponse, couponCode string) error {
	coupon := sql.NullString{String: couponCode, Valid: couponCode != ""}
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO orders (provider_order_id, receipt, amount_paise, currency, coupon_code, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, order.ID, order.Receipt, order.Amount, order.Currency, coupon, models.OrderStatusCreated)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (c *Client) MarkOrderPaid(ctx context.Context, providerOrderID, paymentID string) error {
	_, err := c.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, payment_id = $2, updated_at = NOW()
		WHERE provider_order_id = $3
	`, models.OrderStatusPaid, paymentID, providerOrderID)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.db.Close()
}
