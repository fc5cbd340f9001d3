package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntitySet names one homogeneous collection of rows. The value is the table name.
type EntitySet string

const (
	SetCategories     EntitySet = "product_categories"
	SetProducts       EntitySet = "products"
	SetUsers          EntitySet = "users"
	SetCampaigns      EntitySet = "marketing_campaigns"
	SetTrafficSources EntitySet = "traffic_sources"
	SetOrders         EntitySet = "orders"
	SetOrderItems     EntitySet = "order_items"
	SetOrderCampaigns EntitySet = "order_campaigns"
	SetBehaviors      EntitySet = "user_behaviors"
)

// AllSets lists every entity set the tool writes.
var AllSets = []EntitySet{
	SetCategories,
	SetProducts,
	SetUsers,
	SetCampaigns,
	SetTrafficSources,
	SetOrders,
	SetOrderItems,
	SetOrderCampaigns,
	SetBehaviors,
}

type Category struct {
	ID       int64
	Name     string
	Level    int
	ParentID *int64
}

type Product struct {
	ID            int64
	Name          string
	CategoryID    int64
	OriginalPrice decimal.Decimal
	CurrentPrice  decimal.Decimal
	Cost          decimal.Decimal
	Stock         int
	Active        bool
	Description   string
	CreatedAt     time.Time
}

// ProductPrice is the read-only lookup the order engine samples from.
type ProductPrice struct {
	ID    int64
	Price decimal.Decimal
}

type LoyaltyTier string

const (
	TierBronze   LoyaltyTier = "Bronze"
	TierSilver   LoyaltyTier = "Silver"
	TierGold     LoyaltyTier = "Gold"
	TierPlatinum LoyaltyTier = "Platinum"
)

type User struct {
	ID               int64
	Username         string
	FullName         string
	Email            string
	Gender           string
	Age              int
	City             string
	RegistrationDate time.Time
	LastLoginDate    *time.Time
	Source           string
	Tier             LoyaltyTier
}

// UserRef is the slice of a user the order engine needs.
type UserRef struct {
	ID           int64
	RegisteredAt time.Time
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Campaign struct {
	ID             int64
	Name           string
	StartDate      time.Time
	EndDate        time.Time
	Budget         decimal.Decimal
	DiscountType   DiscountType
	DiscountValue  decimal.Decimal
	TargetAudience string
}

// ActiveOn reports whether day falls inside [StartDate, EndDate], compared by calendar date.
func (c Campaign) ActiveOn(day time.Time) bool {
	d := DateOf(day)
	return !d.Before(DateOf(c.StartDate)) && !d.After(DateOf(c.EndDate))
}

type TrafficSource struct {
	ID         int64
	Name       string
	Type       string
	CampaignID *int64
}

type OrderStatus string

const (
	StatusCompleted  OrderStatus = "Completed"
	StatusCancelled  OrderStatus = "Cancelled"
	StatusRefunded   OrderStatus = "Refunded"
	StatusProcessing OrderStatus = "Processing"
)

type Order struct {
	ID             int64
	UserID         int64
	OrderDate      time.Time
	Status         OrderStatus
	PaymentMethod  string
	Channel        string
	Device         string
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	Items          []OrderItem
	CampaignIDs    []int64
}

type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
}

// Subtotal is unit price times quantity, before discount.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type CampaignOrderLink struct {
	OrderID    int64
	CampaignID int64
}

type BehaviorType string

const (
	BehaviorBrowse   BehaviorType = "browse"
	BehaviorCart     BehaviorType = "cart"
	BehaviorFavorite BehaviorType = "favorite"
	BehaviorPurchase BehaviorType = "purchase"
	BehaviorReview   BehaviorType = "review"
)

type BehaviorEvent struct {
	ID        int64
	UserID    int64
	ProductID *int64
	Type      BehaviorType
	Timestamp time.Time
	SourceID  *int64
	OrderID   *int64
}

// Purchase is one line item of a completed order, as read back for behavior derivation.
type Purchase struct {
	OrderID   int64
	UserID    int64
	ProductID int64
	OrderDate time.Time
}

// DateOf truncates t to midnight UTC of its calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
