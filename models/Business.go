package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Business struct {
	gorm.Model
	Name          string         `json:"name" gorm:"not null"`
	Email         string         `json:"email" gorm:"uniqueIndex;not null"`
	Password      string         `json:"-"`
	BusinessName  string         `json:"businessName" gorm:"not null"`
	ContactNumber string         `json:"contactNumber" gorm:"not null"`
	Address       string         `json:"address" gorm:"not null"`
	Description   string         `json:"description" gorm:"type:text"`
	Verified      bool           `json:"verified" gorm:"default:false"`
	Categories    datatypes.JSON `json:"categories"`
}

// Custom JSON marshaling so Categories renders as a plain string array
func (b *Business) MarshalJSON() ([]byte, error) {
	type Alias Business
	aux := &struct {
		Categories []string `json:"categories"`
		*Alias
	}{
		Categories: []string{},
		Alias:      (*Alias)(b),
	}

	if b.Categories != nil {
		var categories []string
		if err := json.Unmarshal(b.Categories, &categories); err == nil {
			aux.Categories = categories
		}
	}

	return json.Marshal(aux)
}
