package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// FollowService provides follow-graph business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow makes actor follow target. Following yourself or a missing user is
// rejected; following someone twice reports the existing relationship.
func (s *FollowService) Follow(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return models.NewSelfReferenceError("Cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, actorID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	inserted, err := s.followRepo.Create(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if !inserted {
		return models.NewAlreadyExistsError("Already following this user")
	}
	return nil
}

// Unfollow removes actor's follow of target.
func (s *FollowService) Unfollow(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return models.NewSelfReferenceError("Cannot unfollow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, actorID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	removed, err := s.followRepo.Delete(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFoundMessage("Not following this user")
	}
	return nil
}

// ListFollowers returns the users following userID.
func (s *FollowService) ListFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowers(ctx, userID)
}

// ListFollowing returns the users userID follows.
func (s *FollowService) ListFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowing(ctx, userID)
}

// IsFollowing reports whether actor currently follows target.
func (s *FollowService) IsFollowing(ctx context.Context, actorID, targetID uint) (bool, error) {
	return s.followRepo.Exists(ctx, actorID, targetID)
}

// Counts returns the follower and following counts for userID.
func (s *FollowService) Counts(ctx context.Context, userID uint) (followers, following int64, err error) {
	if _, err = s.userRepo.GetByID(ctx, userID); err != nil {
		return 0, 0, err
	}
	followers, err = s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	following, err = s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
