package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderBuilderAggregates(t *testing.T) {
	at := time.Date(2024, 7, 3, 14, 0, 0, 0, time.UTC)
	b := NewOrderBuilder(1, 42, at).Status(StatusCompleted).Payment("Alipay").Channel("iOS App", "Mobile")

	require.NoError(t, b.AddItem(OrderItem{ID: 1, ProductID: 7, Quantity: 2, UnitPrice: decimal.RequireFromString("19.99"), Discount: decimal.RequireFromString("4.00")}, 3))
	require.NoError(t, b.AddItem(OrderItem{ID: 2, ProductID: 8, Quantity: 1, UnitPrice: decimal.RequireFromString("0.10"), Discount: decimal.Zero}, 0))
	require.NoError(t, b.AddItem(OrderItem{ID: 3, ProductID: 9, Quantity: 3, UnitPrice: decimal.RequireFromString("0.20"), Discount: decimal.RequireFromString("0.60")}, 3))

	order, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "40.68", order.TotalAmount.StringFixed(2))
	assert.Equal(t, "4.60", order.DiscountAmount.StringFixed(2))
	assert.Equal(t, []int64{3}, order.CampaignIDs)
	for _, item := range order.Items {
		assert.Equal(t, int64(1), item.OrderID)
	}
	assert.Equal(t, "Mobile", order.Device)
}

func TestOrderBuilderRejectsInvalidItems(t *testing.T) {
	b := NewOrderBuilder(5, 1, time.Now())

	err := b.AddItem(OrderItem{ProductID: 1, Quantity: 0, UnitPrice: decimal.NewFromInt(10)}, 0)
	assert.Error(t, err)

	err = b.AddItem(OrderItem{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(10), Discount: decimal.NewFromInt(11)}, 0)
	assert.Error(t, err)

	err = b.AddItem(OrderItem{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(10), Discount: decimal.NewFromInt(-1)}, 0)
	assert.Error(t, err)

	_, err = b.Build()
	assert.Error(t, err, "empty order must not finalize")
}

func TestOrderBuilderFinalizesOnce(t *testing.T) {
	b := NewOrderBuilder(9, 1, time.Now())
	require.NoError(t, b.AddItem(OrderItem{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(5)}, 0))

	_, err := b.Build()
	require.NoError(t, err)

	_, err = b.Build()
	assert.ErrorIs(t, err, ErrOrderFinalized)
	assert.ErrorIs(t, b.AddItem(OrderItem{ProductID: 2, Quantity: 1, UnitPrice: decimal.NewFromInt(5)}, 0), ErrOrderFinalized)
}

func TestCampaignActiveOnIsInclusive(t *testing.T) {
	c := Campaign{
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, c.ActiveOn(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, c.ActiveOn(time.Date(2024, 6, 14, 23, 59, 59, 0, time.UTC)))
	assert.False(t, c.ActiveOn(time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, c.ActiveOn(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))
}
