package service

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostServiceCreatePostValidation(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopUserRepo(), nil)
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Title: " ", Content: "body"})
	assertErrorCode(t, err, models.CodeValidation)

	_, err = svc.CreatePost(ctx, CreatePostInput{UserID: 1, Title: "title", Content: ""})
	assertErrorCode(t, err, models.CodeValidation)
}

func TestPostServiceUpdatePostNotOwner(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 10}, nil
	}

	svc := NewPostService(repo, noopUserRepo(), nil)
	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 11, PostID: 5, Title: "x"})
	assertErrorCode(t, err, models.CodeForbidden)
}

func TestPostServiceDeletePostNotOwner(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 10}, nil
	}
	notAdmin := func(context.Context, uint) (bool, error) { return false, nil }

	svc := NewPostService(repo, noopUserRepo(), notAdmin)
	err := svc.DeletePost(context.Background(), 5, 11)
	assertErrorCode(t, err, models.CodeForbidden)
}

func TestPostServiceDeletePostAsAdmin(t *testing.T) {
	deleted := false
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 10}, nil
	}
	repo.deleteFn = func(context.Context, uint) error {
		deleted = true
		return nil
	}
	admin := func(context.Context, uint) (bool, error) { return true, nil }

	svc := NewPostService(repo, noopUserRepo(), admin)
	require.NoError(t, svc.DeletePost(context.Background(), 5, 11))
	assert.True(t, deleted, "expected post to be deleted")
}

func TestPostServiceSearchRequiresQuery(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopUserRepo(), nil)
	_, err := svc.SearchPosts(context.Background(), "", 10, 0, 0)
	assertErrorCode(t, err, models.CodeValidation)
}
