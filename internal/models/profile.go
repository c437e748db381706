package models

// Profile holds the single deployment's pantry and equipment lists
type Profile struct {
	Base
	Singleton    string `gorm:"column:singleton_key;size:32;uniqueIndex;not null" json:"-"`
	PantryText   string `gorm:"type:text;not null;default:''" json:"pantryText"`
	UtensilsText string `gorm:"type:text;not null;default:''" json:"utensilsText"`
}

func (Profile) TableName() string {
	return "profiles"
}

// PreferenceSummary is the rolling natural-language profile learned from feedback
type PreferenceSummary struct {
	Base
	Singleton   string `gorm:"column:singleton_key;size:32;uniqueIndex;not null" json:"-"`
	SummaryText string `gorm:"type:text;not null" json:"summaryText"`
}

func (PreferenceSummary) TableName() string {
	return "preference_summaries"
}
