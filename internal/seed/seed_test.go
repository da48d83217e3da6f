package seed

import (
	"testing"

	"ripple/internal/database"
	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeedSocialMesh(t *testing.T) {
	db := newSeedDB(t)
	s := NewSeeder(db, Options{SkipBcrypt: true})

	users, err := s.SeedSocialMesh(6)
	require.NoError(t, err)
	assert.Len(t, users, 6)

	var userCount, followCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Follow{}).Count(&followCount).Error)
	assert.Equal(t, int64(6), userCount)
	assert.Greater(t, followCount, int64(0))

	// No self edges
	var selfEdges int64
	require.NoError(t, db.Model(&models.Follow{}).
		Where("follower_id = followee_id").Count(&selfEdges).Error)
	assert.Equal(t, int64(0), selfEdges)
}

func TestSeedEngagement(t *testing.T) {
	db := newSeedDB(t)
	s := NewSeeder(db, Options{SkipBcrypt: true})

	users, err := s.SeedSocialMesh(6)
	require.NoError(t, err)

	posts, err := s.SeedEngagement(users, 12)
	require.NoError(t, err)
	assert.Len(t, posts, 12)

	var postCount int64
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	assert.Equal(t, int64(12), postCount)

	// Engagement rows never violate the composite unique indexes.
	var dupLikes int64
	require.NoError(t, db.Model(&models.Like{}).
		Select("COUNT(*) - COUNT(DISTINCT user_id || ':' || post_id)").
		Scan(&dupLikes).Error)
	assert.Equal(t, int64(0), dupLikes)
}

func TestClearAll(t *testing.T) {
	db := newSeedDB(t)
	s := NewSeeder(db, Options{SkipBcrypt: true})

	users, err := s.SeedSocialMesh(4)
	require.NoError(t, err)
	_, err = s.SeedEngagement(users, 5)
	require.NoError(t, err)

	require.NoError(t, s.ClearAll())

	for _, model := range []any{&models.User{}, &models.Post{}, &models.Like{}, &models.Follow{}} {
		var count int64
		require.NoError(t, db.Unscoped().Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestFactoryDryRun(t *testing.T) {
	s := NewFactory(nil, Options{DryRun: true, SkipBcrypt: true})

	user, err := s.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, user.Username)

	post, err := s.CreatePost(user)
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, user.ID, post.UserID)
	assert.False(t, post.CreatedAt.IsZero())
}
