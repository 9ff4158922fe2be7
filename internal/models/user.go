package models

type User struct {
	BaseModel

	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}
