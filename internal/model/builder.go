package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrOrderFinalized = errors.New("order already finalized")

// OrderBuilder accumulates line items in memory and emits one finalized Order.
// Totals are never visible on a partially built order.
type OrderBuilder struct {
	order     Order
	total     decimal.Decimal
	discount  decimal.Decimal
	campaigns map[int64]bool
	finalized bool
}

func NewOrderBuilder(id, userID int64, at time.Time) *OrderBuilder {
	return &OrderBuilder{
		order: Order{
			ID:        id,
			UserID:    userID,
			OrderDate: at,
		},
		total:     decimal.Zero,
		discount:  decimal.Zero,
		campaigns: make(map[int64]bool),
	}
}

func (b *OrderBuilder) Status(s OrderStatus) *OrderBuilder {
	b.order.Status = s
	return b
}

func (b *OrderBuilder) Payment(method string) *OrderBuilder {
	b.order.PaymentMethod = method
	return b
}

func (b *OrderBuilder) Channel(channel, device string) *OrderBuilder {
	b.order.Channel = channel
	b.order.Device = device
	return b
}

// AddItem appends a line item. campaignID is zero when no campaign discount applied.
func (b *OrderBuilder) AddItem(item OrderItem, campaignID int64) error {
	if b.finalized {
		return ErrOrderFinalized
	}
	if item.Quantity < 1 {
		return fmt.Errorf("order %d: quantity must be at least 1, got %d", b.order.ID, item.Quantity)
	}
	subtotal := item.Subtotal()
	if item.Discount.IsNegative() || item.Discount.GreaterThan(subtotal) {
		return fmt.Errorf("order %d: discount %s outside [0, %s]", b.order.ID, item.Discount, subtotal)
	}

	item.OrderID = b.order.ID
	b.order.Items = append(b.order.Items, item)
	b.total = b.total.Add(subtotal)
	b.discount = b.discount.Add(item.Discount)

	if campaignID != 0 && !b.campaigns[campaignID] {
		b.campaigns[campaignID] = true
		b.order.CampaignIDs = append(b.order.CampaignIDs, campaignID)
	}
	return nil
}

// Build finalizes the order. The builder cannot be reused afterwards.
func (b *OrderBuilder) Build() (Order, error) {
	if b.finalized {
		return Order{}, ErrOrderFinalized
	}
	if len(b.order.Items) == 0 {
		return Order{}, fmt.Errorf("order %d has no items", b.order.ID)
	}
	b.finalized = true
	b.order.TotalAmount = b.total.Round(2)
	b.order.DiscountAmount = b.discount.Round(2)
	return b.order, nil
}
