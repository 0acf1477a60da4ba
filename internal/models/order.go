package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the order lifecycle tag.
type OrderStatus string

const (
	StatusOrdered   OrderStatus = "Ordered"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

// Valid reports whether s is a declared order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusOrdered, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) String() string { return string(s) }

// ParseOrderStatus validates a raw status value.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid order status %q", raw)
	}
	return s, nil
}

// PaymentMethod is the closed set of accepted payment methods.
type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "cod"
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
)

// Valid reports whether m is a declared payment method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCOD || m == PaymentCard || m == PaymentUPI
}

// ShippingInfo is the address snapshot taken at checkout.
type ShippingInfo struct {
	Address string `bson:"address" json:"address" binding:"required"`
	City    string `bson:"city" json:"city" binding:"required"`
	State   string `bson:"state" json:"state" binding:"required"`
	Zipcode string `bson:"zipcode" json:"zipcode" binding:"required"`
	Country string `bson:"country" json:"country" binding:"required"`
	Phone   string `bson:"phone" json:"phone" binding:"required"`
}

// OrderItem is a denormalized copy of product data taken at order
// creation, so later product edits never affect order history.
type OrderItem struct {
	Name      string             `bson:"name" json:"name" binding:"required"`
	Quantity  int                `bson:"quantity" json:"quantity" binding:"required,gt=0"`
	Image     string             `bson:"image" json:"image"`
	Price     float64            `bson:"price" json:"price"`
	ProductID primitive.ObjectID `bson:"product_id" json:"productId" binding:"required"`
}

// PaymentInfo records the external payment reference.
type PaymentInfo struct {
	ID     string `bson:"id" json:"id"`
	Status string `bson:"status" json:"status"`
}

// Order is a placed order document. Items and totals are frozen at
// creation time; only the status and delivery timestamp change after.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShippingInfo  ShippingInfo       `bson:"shipping_info" json:"shippingInfo"`
	UserID        primitive.ObjectID `bson:"user" json:"user"`
	Items         []OrderItem        `bson:"order_items" json:"orderItems"`
	PaymentMethod PaymentMethod      `bson:"payment_method" json:"paymentMethod"`
	PaymentInfo   PaymentInfo        `bson:"payment_info" json:"paymentInfo"`
	ItemsPrice    float64            `bson:"items_price" json:"itemsPrice"`
	TaxPrice      float64            `bson:"tax_price" json:"taxPrice"`
	TotalAmount   float64            `bson:"total_amount" json:"totalAmount"`
	Status        OrderStatus        `bson:"order_status" json:"orderStatus"`
	DeliveredAt   *time.Time         `bson:"delivered_at,omitempty" json:"deliveredAt,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}
