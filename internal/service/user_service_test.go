package service

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserServiceUpdateProfileNotOwner(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, IsAdmin: false}, nil
	}

	svc := NewUserService(users)
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		ActorID: 2, TargetID: 1, Bio: "new bio",
	})
	assertErrorCode(t, err, models.CodeForbidden)
}

func TestUserServiceUpdateProfileAsAdmin(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, IsAdmin: id == 2}, nil
	}
	var updated *models.User
	users.updateFn = func(_ context.Context, u *models.User) error {
		updated = u
		return nil
	}

	svc := NewUserService(users)
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		ActorID: 2, TargetID: 1, Bio: "moderated",
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "moderated", updated.Bio)
}

func TestUserServiceUpdateProfileUsernameTaken(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: 9, Username: username}, nil
	}

	svc := NewUserService(users)
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		ActorID: 1, TargetID: 1, Username: "taken",
	})
	assertErrorCode(t, err, models.CodeAlreadyExists)
}

func TestUserServiceDeleteUserNotOwner(t *testing.T) {
	svc := NewUserService(noopUserRepo())
	err := svc.DeleteUser(context.Background(), 2, 1)
	assertErrorCode(t, err, models.CodeForbidden)
}

func TestUserServiceSearchRequiresQuery(t *testing.T) {
	svc := NewUserService(noopUserRepo())
	_, err := svc.SearchUsers(context.Background(), "", 10, 0)
	assertErrorCode(t, err, models.CodeValidation)
}
