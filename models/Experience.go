package models

import "time"

type Experience struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	BusinessID uint     `json:"businessID" gorm:"not null;index"`
	Business   Business `json:"business" gorm:"foreignKey:BusinessID"`

	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description" gorm:"type:text;not null"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Location    string  `json:"location" gorm:"not null;index"`
	Image       string  `json:"image"`
	Type        string  `json:"type" gorm:"default:popular"` // popular, adventure, cultural, nature, food

	IsAvailable    bool    `json:"isAvailable" gorm:"default:true"`
	Duration       string  `json:"duration" gorm:"not null"`
	PricePerPerson float64 `json:"pricePerPerson" gorm:"not null"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
