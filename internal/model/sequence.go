package model

// Sequence backs identifier generation. One row per entity type, updated
// under a row lock so two concurrent creations can never be handed the same
// next value.
type Sequence struct {
	Name  string `gorm:"primaryKey;size:20"`
	Value int64  `gorm:"not null"`
}

func (Sequence) TableName() string {
	return "sequences"
}
