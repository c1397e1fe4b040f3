package models

import (
	"fmt"
	"time"
)

const (
	OrderPending   = "Pending"
	OrderPreparing = "Preparing"
	OrderReady     = "Ready"
	OrderDelivered = "Delivered"
)

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"not null;index" json:"user"`
	User        User        `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Status      string      `gorm:"type:varchar(16);not null;default:'Pending'" json:"status"`
	Subtotal    float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"subtotal"`
	Tax         float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"tax"`
	TotalAmount float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"totalAmount"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt   time.Time   `gorm:"not null;index" json:"createdAt"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updatedAt"`
}

// orderFlow maps each status to the one that follows it.
var orderFlow = map[string]string{
	OrderPending:   OrderPreparing,
	OrderPreparing: OrderReady,
	OrderReady:     OrderDelivered,
}

// NextStatus returns the status after current, or false once delivered.
func NextStatus(current string) (string, bool) {
	next, ok := orderFlow[current]
	return next, ok
}

func IsOrderStatus(s string) bool {
	return s == OrderDelivered || orderFlow[s] != ""
}

// Reference is the short order number shown on the tracking page.
func (o *Order) Reference() string {
	return fmt.Sprintf("ORD-%06d", o.ID)
}
