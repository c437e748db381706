package models

import (
	"github.com/google/uuid"
)

// OptionFeedback is the latest decision on an option; a new submission replaces it.
type OptionFeedback struct {
	Base
	OptionItemID uuid.UUID   `gorm:"type:varchar(36);uniqueIndex;not null" json:"optionItemId"`
	OptionItem   *OptionItem `json:"optionItem,omitempty"`
	Decision     string      `gorm:"size:16;not null" json:"decision"`
	Reason       *string     `gorm:"size:32" json:"reason"`
	ReasonNote   *string     `gorm:"type:text" json:"reasonNote"`
}

func (OptionFeedback) TableName() string {
	return "option_feedback"
}

// SavedMeal bookmarks an option
type SavedMeal struct {
	Base
	OptionItemID uuid.UUID   `gorm:"type:varchar(36);uniqueIndex;not null" json:"optionItemId"`
	OptionItem   *OptionItem `json:"optionItem,omitempty"`
}

func (SavedMeal) TableName() string {
	return "saved_meals"
}
