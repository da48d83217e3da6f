package repository

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"ripple/internal/database"
	"ripple/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")

	var err error
	testDB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("failed to open test database: %v", err)
	}

	if err := database.Migrate(testDB); err != nil {
		log.Fatalf("failed to migrate test database: %v", err)
	}

	os.Exit(m.Run())
}

// createTestUser inserts a user with a unique username/email and returns it.
func createTestUser(t *testing.T, prefix string) *models.User {
	t.Helper()
	ts := time.Now().UnixNano()
	u := &models.User{
		Username: fmt.Sprintf("%s_%d", prefix, ts),
		Email:    fmt.Sprintf("%s_%d@example.com", prefix, ts),
		Password: "hashed",
	}
	if err := testDB.Create(u).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

func createTestPost(t *testing.T, userID uint, title string) *models.Post {
	t.Helper()
	p := &models.Post{
		Title:   title,
		Content: "content for " + title,
		UserID:  userID,
	}
	if err := testDB.Create(p).Error; err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	return p
}
