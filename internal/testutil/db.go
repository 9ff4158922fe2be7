// Package testutil provides an isolated in-memory store for package tests.
package testutil

import (
	"testing"

	"github.com/prehab-dev/prehab/db"
	"github.com/prehab-dev/prehab/internal/config"
	"github.com/prehab-dev/prehab/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory sqlite database. A single connection keeps
// every query on the same in-memory instance.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.ConnectDatabase(config.Database{
		Driver:          "sqlite",
		DSN:             ":memory:?_foreign_keys=on",
		MaxOpenConns:    1,
		ConnectAttempts: 1,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.MigrateDatabase(gdb); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return gdb
}

// CreateUser inserts a user with a throwaway password hash.
func CreateUser(t *testing.T, gdb *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{Username: username, PasswordHash: "x"}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}

	return user
}

// CreateExercise inserts an exercise owned by ownerID.
func CreateExercise(t *testing.T, gdb *gorm.DB, ownerID uint, name string, public bool) models.Exercise {
	t.Helper()

	exercise := models.Exercise{
		Name:        name,
		Description: name + " description",
		Difficulty:  3,
		IsPublic:    public,
		OwnerID:     ownerID,
	}
	if err := gdb.Create(&exercise).Error; err != nil {
		t.Fatalf("create exercise %s: %v", name, err)
	}

	return exercise
}
