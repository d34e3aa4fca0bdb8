package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name          string `json:"name" gorm:"not null"`
	Email         string `json:"email" gorm:"uniqueIndex;not null"`
	Password      string `json:"-"`
	ContactNumber string `json:"contactNumber" gorm:"not null"`
	Nationality   string `json:"nationality" gorm:"not null"`
	Gender        string `json:"gender"` // "male", "female", "other"
}
