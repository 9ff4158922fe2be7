package models

type Exercise struct {
	BaseModel

	Name        string `gorm:"not null"`
	Description string
	Difficulty  int    `gorm:"not null;check:difficulty >= 1 AND difficulty <= 5"`
	IsPublic    bool   `gorm:"not null;index:idx_exercises_owner_public,priority:2"`
	OwnerID     uint   `gorm:"not null;index:idx_exercises_owner_public,priority:1"`
	VideoURL    string

	// Relationships
	Owner User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
