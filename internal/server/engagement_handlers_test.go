package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEngagementRepository is a mock of the EngagementRepository interface
type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) AddLike(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) RemoveLike(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) CountLikes(ctx context.Context, postID uint) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEngagementRepository) AddSave(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) RemoveSave(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) IsSaved(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) GetSavedPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.Post), args.Error(1)
}

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	args := m.Called(ctx, userID, limit, offset, currentUserID)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByOwnerIDs(ctx context.Context, ownerIDs []uint, currentUserID uint) ([]*models.Post, error) {
	args := m.Called(ctx, ownerIDs, currentUserID)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, sort string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	args := m.Called(ctx, sort, limit, offset, currentUserID)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	args := m.Called(ctx, query, limit, offset, currentUserID)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newEngagementTestApp(engagementRepo *MockEngagementRepository, postRepo *MockPostRepository, policy service.SavePolicy) *fiber.App {
	app := fiber.New()
	s := &Server{
		engagementService: service.NewEngagementService(engagementRepo, postRepo, policy),
		postService:       service.NewPostService(postRepo, nil, nil),
	}

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	app.Post("/posts/:id/like", s.ToggleLike)
	app.Post("/posts/:id/save", s.SavePost)
	app.Delete("/posts/:id/save", s.UnsavePost)
	return app
}

func TestToggleLike(t *testing.T) {
	tests := []struct {
		name           string
		mockSetup      func(e *MockEngagementRepository, p *MockPostRepository)
		expectedStatus int
	}{
		{
			name: "Like",
			mockSetup: func(e *MockEngagementRepository, p *MockPostRepository) {
				p.On("GetByID", mock.Anything, uint(10), mock.Anything).Return(&models.Post{ID: 10}, nil)
				e.On("AddLike", mock.Anything, uint(1), uint(10)).Return(true, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Unlike",
			mockSetup: func(e *MockEngagementRepository, p *MockPostRepository) {
				p.On("GetByID", mock.Anything, uint(10), mock.Anything).Return(&models.Post{ID: 10}, nil)
				e.On("AddLike", mock.Anything, uint(1), uint(10)).Return(false, nil)
				e.On("RemoveLike", mock.Anything, uint(1), uint(10)).Return(true, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Post Missing",
			mockSetup: func(e *MockEngagementRepository, p *MockPostRepository) {
				p.On("GetByID", mock.Anything, uint(10), mock.Anything).Return(nil, models.NewNotFoundError("Post", 10))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engagementRepo := new(MockEngagementRepository)
			postRepo := new(MockPostRepository)
			tt.mockSetup(engagementRepo, postRepo)
			app := newEngagementTestApp(engagementRepo, postRepo, service.SavePolicyErrorOnRepeat)

			req := httptest.NewRequest(http.MethodPost, "/posts/10/like", nil)
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestSavePost(t *testing.T) {
	tests := []struct {
		name           string
		policy         service.SavePolicy
		mockSetup      func(e *MockEngagementRepository, p *MockPostRepository)
		expectedStatus int
	}{
		{
			name:   "Success",
			policy: service.SavePolicyErrorOnRepeat,
			mockSetup: func(e *MockEngagementRepository, p *MockPostRepository) {
				p.On("GetByID", mock.Anything, uint(10), mock.Anything).Return(&models.Post{ID: 10}, nil)
				e.On("AddSave", mock.Anything, uint(1), uint(10)).Return(true, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "Already Saved",
			policy: service.SavePolicyErrorOnRepeat,
			mockSetup: func(e *MockEngagementRepository, p *MockPostRepository) {
				p.On("GetByID", mock.Anything, uint(10), mock.Anything).Return(&models.Post{ID: 10}, nil)
				e.On("AddSave", mock.Anything, uint(1), uint(10)).Return(false, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "Repeat Toggles Off",
			policy: service.SavePolicyToggle,
			mockSetup: func(e *MockEngagementRepository, p *MockPostRepository) {
				p.On("GetByID", mock.Anything, uint(10), mock.Anything).Return(&models.Post{ID: 10}, nil)
				e.On("AddSave", mock.Anything, uint(1), uint(10)).Return(false, nil)
				e.On("RemoveSave", mock.Anything, uint(1), uint(10)).Return(true, nil)
			},
			expectedStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engagementRepo := new(MockEngagementRepository)
			postRepo := new(MockPostRepository)
			tt.mockSetup(engagementRepo, postRepo)
			app := newEngagementTestApp(engagementRepo, postRepo, tt.policy)

			req := httptest.NewRequest(http.MethodPost, "/posts/10/save", nil)
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestUnsavePost(t *testing.T) {
	tests := []struct {
		name           string
		policy         service.SavePolicy
		mockSetup      func(e *MockEngagementRepository, p *MockPostRepository)
		expectedStatus int
	}{
		{
			name:   "Success",
			policy: service.SavePolicyErrorOnRepeat,
			mockSetup: func(e *MockEngagementRepository, p *MockPostRepository) {
				p.On("GetByID", mock.Anything, uint(10), mock.Anything).Return(&models.Post{ID: 10}, nil)
				e.On("RemoveSave", mock.Anything, uint(1), uint(10)).Return(true, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Not Saved",
			policy: service.SavePolicyErrorOnRepeat,
			mockSetup: func(e *MockEngagementRepository, p *MockPostRepository) {
				p.On("GetByID", mock.Anything, uint(10), mock.Anything).Return(&models.Post{ID: 10}, nil)
				e.On("RemoveSave", mock.Anything, uint(1), uint(10)).Return(false, nil)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "Not Saved Under Toggle Policy",
			policy: service.SavePolicyToggle,
			mockSetup: func(e *MockEngagementRepository, p *MockPostRepository) {
				p.On("GetByID", mock.Anything, uint(10), mock.Anything).Return(&models.Post{ID: 10}, nil)
				e.On("RemoveSave", mock.Anything, uint(1), uint(10)).Return(false, nil)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engagementRepo := new(MockEngagementRepository)
			postRepo := new(MockPostRepository)
			tt.mockSetup(engagementRepo, postRepo)
			app := newEngagementTestApp(engagementRepo, postRepo, tt.policy)

			req := httptest.NewRequest(http.MethodDelete, "/posts/10/save", nil)
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}
