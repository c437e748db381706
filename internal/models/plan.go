package models

import (
	"github.com/google/uuid"

	"github.com/pageza/mealmind/backend/internal/schema"
	"github.com/pageza/mealmind/backend/internal/types"
)

// Plan is a multi-day dinner plan
type Plan struct {
	Base
	Inputs        types.PlanInputs     `gorm:"column:inputs_json;type:text;serializer:json" json:"inputs"`
	ReuseStrategy schema.ReuseStrategy `gorm:"column:reuse_strategy_json;type:text;serializer:json" json:"reuseStrategy"`
	Model         string               `gorm:"size:100;not null" json:"model"`
	PromptVersion string               `gorm:"size:32;not null" json:"promptVersion"`
	Days          []PlanDay            `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE" json:"days"`
	ShoppingList  *ShoppingList        `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE" json:"shoppingList"`
}

func (Plan) TableName() string {
	return "plans"
}

// Recipes returns the day recipes in day order
func (p *Plan) Recipes() []schema.PlanDayRecipe {
	out := make([]schema.PlanDayRecipe, len(p.Days))
	for i, d := range p.Days {
		out[i] = d.Recipe
	}
	return out
}

// PlanDay holds one day's recipe and the raw text it was validated from
type PlanDay struct {
	Base
	PlanID          uuid.UUID            `gorm:"type:varchar(36);not null;uniqueIndex:idx_plan_day" json:"planId"`
	DayIndex        int                  `gorm:"not null;uniqueIndex:idx_plan_day" json:"dayIndex"`
	Recipe          schema.PlanDayRecipe `gorm:"column:recipe_json;type:text;serializer:json" json:"recipe"`
	RawResponseJSON string               `gorm:"column:raw_response_json;type:text;not null" json:"-"`
}

func (PlanDay) TableName() string {
	return "plan_days"
}

// ShoppingList is the categorized buy list for a plan
type ShoppingList struct {
	Base
	PlanID          uuid.UUID           `gorm:"type:varchar(36);uniqueIndex;not null" json:"planId"`
	List            schema.ShoppingList `gorm:"column:list_json;type:text;serializer:json" json:"list"`
	RawResponseJSON string              `gorm:"column:raw_response_json;type:text;not null" json:"-"`
}

func (ShoppingList) TableName() string {
	return "shopping_lists"
}

// All lists every model in migration order
func All() []interface{} {
	return []interface{}{
		&Profile{},
		&PreferenceSummary{},
		&Session{},
		&RecommendationSet{},
		&OptionItem{},
		&OptionFeedback{},
		&SavedMeal{},
		&Plan{},
		&PlanDay{},
		&ShoppingList{},
	}
}
