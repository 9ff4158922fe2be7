package models

// Favorite and Saved are pure membership relations: at most one row per
// (user, exercise) pair, enforced by the unique index.
type Favorite struct {
	BaseModel

	UserID     uint `gorm:"not null;uniqueIndex:unique_user_favorite,priority:1"`
	ExerciseID uint `gorm:"not null;uniqueIndex:unique_user_favorite,priority:2;index"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Exercise Exercise `gorm:"foreignKey:ExerciseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type Saved struct {
	BaseModel

	UserID     uint `gorm:"not null;uniqueIndex:unique_user_saved,priority:1"`
	ExerciseID uint `gorm:"not null;uniqueIndex:unique_user_saved,priority:2;index"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Exercise Exercise `gorm:"foreignKey:ExerciseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Saved) TableName() string {
	return "saved"
}

type Rating struct {
	BaseModel

	UserID     uint `gorm:"not null;uniqueIndex:unique_user_rating,priority:1"`
	ExerciseID uint `gorm:"not null;uniqueIndex:unique_user_rating,priority:2;index"`
	Rating     int  `gorm:"not null;check:rating >= 1 AND rating <= 5"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Exercise Exercise `gorm:"foreignKey:ExerciseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// All lists the models in dependency order for migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Exercise{},
		&Favorite{},
		&Saved{},
		&Rating{},
	}
}
