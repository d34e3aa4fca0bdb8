package models

import "time"

// No soft-delete column: a rejected review is gone for good, and the unique
// (tourist, experience) index must not be held hostage by a deleted row.
type Review struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	TouristID    uint       `json:"touristID" gorm:"not null;index;uniqueIndex:idx_reviews_tourist_experience"`
	Tourist      User       `json:"tourist" gorm:"foreignKey:TouristID"`
	ExperienceID uint       `json:"experienceID" gorm:"not null;index;uniqueIndex:idx_reviews_tourist_experience"`
	Experience   Experience `json:"experience" gorm:"foreignKey:ExperienceID"`

	Rating     int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment    string `json:"comment" gorm:"type:text"`
	IsApproved bool   `json:"isApproved" gorm:"default:false"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
