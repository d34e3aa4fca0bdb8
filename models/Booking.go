package models

import "time"

// Booking has two independent mutation paths: the owning business updates
// status, the payment webhook updates is_paid. Handlers must only ever write
// their own column (column-level Update, never a whole-row Save) so the two
// actors cannot clobber each other.
type Booking struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	TouristID    uint       `json:"touristID" gorm:"not null;index"`
	Tourist      User       `json:"tourist" gorm:"foreignKey:TouristID"`
	ExperienceID uint       `json:"experienceID" gorm:"not null;index"`
	Experience   Experience `json:"experience" gorm:"foreignKey:ExperienceID"`

	Date          time.Time `json:"date" gorm:"not null"`
	Message       string    `json:"message" gorm:"type:text"`
	ContactNumber string    `json:"contactNumber" gorm:"not null"`
	Email         string    `json:"email" gorm:"not null"`
	NoOfPersons   int       `json:"noOfPersons" gorm:"not null"`
	TotalAmount   float64   `json:"totalAmount"`
	IsPaid        bool      `json:"isPaid" gorm:"default:false"`
	Status        string    `json:"status" gorm:"default:pending"` // pending, confirmed, canceled
	Reference     string    `json:"reference" gorm:"uniqueIndex"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
