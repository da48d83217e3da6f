package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ripple/internal/config"
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "unit-test-secret-key-0123456789abcdef"

func newAuthTestApp(userRepo *MockUserRepository) (*fiber.App, *Server) {
	app := fiber.New()
	s := &Server{
		config:   &config.Config{JWTSecret: testJWTSecret},
		userRepo: userRepo,
	}
	app.Post("/auth/register", s.Register)
	app.Post("/auth/login", s.Login)
	return app, s
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestRegister(t *testing.T) {
	validReq := map[string]string{
		"username": "newuser",
		"email":    "new@example.com",
		"password": "SuperSecret123!",
	}

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(u *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: validReq,
			mockSetup: func(u *MockUserRepository) {
				u.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
				u.On("GetByUsername", mock.Anything, "newuser").Return(nil, nil)
				u.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*models.User).ID = 1
					}).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Fields",
			body:           map[string]string{"username": "newuser"},
			mockSetup:      func(u *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Weak Password",
			body: map[string]string{
				"username": "newuser",
				"email":    "new@example.com",
				"password": "short",
			},
			mockSetup:      func(u *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Email Taken",
			body: validReq,
			mockSetup: func(u *MockUserRepository) {
				u.On("GetByEmail", mock.Anything, "new@example.com").
					Return(&models.User{ID: 7, Email: "new@example.com"}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Username Taken",
			body: validReq,
			mockSetup: func(u *MockUserRepository) {
				u.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
				u.On("GetByUsername", mock.Anything, "newuser").
					Return(&models.User{ID: 7, Username: "newuser"}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.mockSetup(userRepo)
			app, _ := newAuthTestApp(userRepo)

			req := httptest.NewRequest(http.MethodPost, "/auth/register", jsonBody(t, tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				var body struct {
					Token string      `json:"token"`
					User  models.User `json:"user"`
				}
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.NotEmpty(t, body.Token)
				assert.Equal(t, "newuser", body.User.Username)
			}
			userRepo.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("SuperSecret123!"), bcrypt.MinCost)
	require.NoError(t, err)
	account := &models.User{ID: 3, Username: "alice", Email: "alice@example.com", Password: string(hashed)}

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(u *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"email": "alice@example.com", "password": "SuperSecret123!"},
			mockSetup: func(u *MockUserRepository) {
				u.On("GetByEmail", mock.Anything, "alice@example.com").Return(account, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Wrong Password",
			body: map[string]string{"email": "alice@example.com", "password": "WrongSecret123!"},
			mockSetup: func(u *MockUserRepository) {
				u.On("GetByEmail", mock.Anything, "alice@example.com").Return(account, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Unknown Email",
			body: map[string]string{"email": "nobody@example.com", "password": "SuperSecret123!"},
			mockSetup: func(u *MockUserRepository) {
				u.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.mockSetup(userRepo)
			app, _ := newAuthTestApp(userRepo)

			req := httptest.NewRequest(http.MethodPost, "/auth/login", jsonBody(t, tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

// Tokens issued at login must round-trip through the auth middleware.
func TestAuthRequiredRoundTrip(t *testing.T) {
	s := &Server{config: &config.Config{JWTSecret: testJWTSecret}}

	token, err := s.generateToken(42, "alice")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/whoami", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": currentUserID(c)})
	})

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"Valid Token", "Bearer " + token, http.StatusOK},
		{"Missing Header", "", http.StatusUnauthorized},
		{"Malformed Header", token, http.StatusUnauthorized},
		{"Garbage Token", "Bearer not.a.token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var body struct {
					UserID uint `json:"user_id"`
				}
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, uint(42), body.UserID)
			}
		})
	}
}
