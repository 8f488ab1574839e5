package domain

import "time"

// Label is the two-valued verdict a classification produces.
type Label string

const (
	LabelAuthentic  Label = "authentic"
	LabelFabricated Label = "fabricated"
)

// Valid reports whether the label is one of the two known values.
func (l Label) Valid() bool {
	return l == LabelAuthentic || l == LabelFabricated
}

// Analysis is one classified submission, owned by exactly one user.
// Records are immutable after creation; the only lifecycle transition
// is an owner-initiated delete.
type Analysis struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID    uint      `gorm:"not null;index:idx_analyses_owner" json:"owner_id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	Label      Label     `gorm:"type:text;not null" json:"label"`
	Confidence float64   `gorm:"not null" json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table name for Analysis.
func (Analysis) TableName() string {
	return "analyses"
}
