package models

import (
	"github.com/google/uuid"

	"github.com/pageza/mealmind/backend/internal/schema"
)

// Session is one request for recommendations
type Session struct {
	Base
	ExtraIngredientsText string              `gorm:"type:text;not null;default:''" json:"extraIngredientsText"`
	ConstraintsJSON      string              `gorm:"column:constraints_json;type:text;not null" json:"constraintsJson"`
	RecommendationSets   []RecommendationSet `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"recommendationSets,omitempty"`
}

func (Session) TableName() string {
	return "sessions"
}

// RecommendationSet is one validated generation attached to a session
type RecommendationSet struct {
	Base
	SessionID     uuid.UUID `gorm:"type:varchar(36);index;not null" json:"sessionId"`
	Session       *Session  `json:"session,omitempty"`
	Model         string    `gorm:"size:100;not null" json:"model"`
	PromptVersion string    `gorm:"size:32;not null" json:"promptVersion"`
	// RawResponseJSON is the exact text that validated; it is never parsed back.
	RawResponseJSON string       `gorm:"column:raw_response_json;type:text;not null" json:"rawResponseJson"`
	Options         []OptionItem `gorm:"foreignKey:RecommendationSetID;constraint:OnDelete:CASCADE" json:"options"`
}

func (RecommendationSet) TableName() string {
	return "recommendation_sets"
}

// OptionItem is one of the three meals of a recommendation set
type OptionItem struct {
	Base
	RecommendationSetID uuid.UUID              `gorm:"type:varchar(36);index;not null" json:"recommendationSetId"`
	RecommendationSet   *RecommendationSet     `json:"recommendationSet,omitempty"`
	Idx                 int                    `gorm:"not null" json:"idx"`
	Title               string                 `gorm:"size:255;not null" json:"title"`
	Why                 string                 `gorm:"type:text;not null" json:"why"`
	TimeMins            float64                `gorm:"not null" json:"timeMins"`
	Difficulty          string                 `gorm:"size:16;not null" json:"difficulty"`
	IngredientsUsed     schema.IngredientsUsed `gorm:"type:text;serializer:json" json:"ingredientsUsed"`
	MissingIngredients  StringList             `gorm:"type:text;not null" json:"missingIngredients"`
	Steps               StringList             `gorm:"type:text;not null" json:"steps"`
	Substitutions       StringList             `gorm:"type:text;not null" json:"substitutions"`
	Feedback            *OptionFeedback        `gorm:"foreignKey:OptionItemID;constraint:OnDelete:CASCADE" json:"feedback,omitempty"`
	SavedMeal           *SavedMeal             `gorm:"foreignKey:OptionItemID;constraint:OnDelete:CASCADE" json:"savedMeal,omitempty"`
}

func (OptionItem) TableName() string {
	return "option_items"
}

// NewOptionItems converts validated options into rows numbered from 1.
func NewOptionItems(options []schema.Option) []OptionItem {
	items := make([]OptionItem, len(options))
	for i, opt := range options {
		var used schema.IngredientsUsed
		if opt.IngredientsUsed != nil {
			used = *opt.IngredientsUsed
		}
		items[i] = OptionItem{
			Idx:                i + 1,
			Title:              opt.Title,
			Why:                opt.Why,
			TimeMins:           opt.TimeMins,
			Difficulty:         string(opt.Difficulty),
			IngredientsUsed:    used,
			MissingIngredients: StringList(opt.MissingIngredients),
			Steps:              StringList(opt.Steps),
			Substitutions:      StringList(opt.Substitutions),
		}
	}
	return items
}
