package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService provides user profile business logic.
type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	ActorID   uint
	TargetID  uint
	Username  string
	FirstName string
	LastName  string
	Bio       string
	Avatar    string
	LivesIn   string
	WorksAt   string
	Password  string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) SearchUsers(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.userRepo.Search(ctx, query, limit, offset)
}

// canActOn reports whether actor may modify target's account.
func (s *UserService) canActOn(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return nil
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin {
		return models.NewForbiddenError("You can only modify your own account")
	}
	return nil
}

// UpdateProfile applies the non-empty fields of in to the target user.
// Only the account owner or an admin may update.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if err := s.canActOn(ctx, in.ActorID, in.TargetID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, in.TargetID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxUsernameLen = 30

	if in.Username != "" && in.Username != user.Username {
		if len(in.Username) > maxUsernameLen {
			return nil, models.NewValidationError("Username too long (max 30 characters)")
		}
		existing, err := s.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewAlreadyExistsError("Username already taken")
		}
		user.Username = in.Username
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}
	if in.LivesIn != "" {
		user.LivesIn = in.LivesIn
	}
	if in.WorksAt != "" {
		user.WorksAt = in.WorksAt
	}
	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the target account and everything hanging off it:
// posts, comments, likes, saves and both sides of the follow graph.
func (s *UserService) DeleteUser(ctx context.Context, actorID, targetID uint) error {
	if err := s.canActOn(ctx, actorID, targetID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, targetID)
}

// IsAdmin reports whether the user has the admin flag. Used as the
// moderation hook by other services.
func (s *UserService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}
