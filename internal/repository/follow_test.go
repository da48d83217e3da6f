package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_Integration(t *testing.T) {
	repo := NewFollowRepository(testDB)
	ctx := context.Background()

	alice := createTestUser(t, "follow_alice")
	bob := createTestUser(t, "follow_bob")
	carol := createTestUser(t, "follow_carol")

	t.Run("Create inserts edge once", func(t *testing.T) {
		inserted, err := repo.Create(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, inserted)

		// Second insert of the same edge is a no-op.
		inserted, err = repo.Create(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, inserted)

		exists, err := repo.Exists(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Both directions derive from one edge", func(t *testing.T) {
		_, err := repo.Create(ctx, carol.ID, bob.ID)
		require.NoError(t, err)

		followers, err := repo.GetFollowers(ctx, bob.ID)
		require.NoError(t, err)
		assert.Len(t, followers, 2)

		following, err := repo.GetFollowing(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, following, 1)
		assert.Equal(t, bob.Username, following[0].Username)

		count, err := repo.CountFollowers(ctx, bob.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)

		count, err = repo.CountFollowing(ctx, alice.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("Edge is directional", func(t *testing.T) {
		exists, err := repo.Exists(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		following, err := repo.GetFollowing(ctx, bob.ID)
		require.NoError(t, err)
		assert.Empty(t, following)
	})

	t.Run("ListFollowingIDs", func(t *testing.T) {
		ids, err := repo.ListFollowingIDs(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint{bob.ID}, ids)
	})

	t.Run("Delete removes edge once", func(t *testing.T) {
		removed, err := repo.Delete(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repo.Delete(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, removed)

		exists, err := repo.Exists(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		// Carol's edge is untouched.
		followers, err := repo.GetFollowers(ctx, bob.ID)
		require.NoError(t, err)
		assert.Len(t, followers, 1)
	})
}
