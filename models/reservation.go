package models

import "time"

const (
	ReservationPending   = "Pending"
	ReservationConfirmed = "Confirmed"
	ReservationCancelled = "Cancelled"
)

const (
	MinGuests             = 1
	MaxGuests             = 20
	MaxSpecialRequestsLen = 500
)

type Reservation struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user"`
	User            User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Date            string    `gorm:"type:varchar(32);not null" json:"date"`
	Time            string    `gorm:"type:varchar(32);not null" json:"time"`
	Guests          int       `gorm:"not null" json:"guests"`
	SpecialRequests string    `gorm:"type:varchar(2000)" json:"specialRequests,omitempty"`
	Status          string    `gorm:"type:varchar(16);not null;default:'Pending'" json:"status"`
	BookingID       string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"bookingId"`
	CreatedAt       time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"not null" json:"updatedAt"`
}
