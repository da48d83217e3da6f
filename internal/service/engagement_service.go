package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// SavePolicy selects how repeated save/unsave calls behave.
type SavePolicy int

const (
	// SavePolicyErrorOnRepeat rejects saving an already-saved post and
	// unsaving a post that is not saved. This is the default.
	SavePolicyErrorOnRepeat SavePolicy = iota
	// SavePolicyToggle makes SavePost flip membership the way ToggleLike
	// does, and turns UnsavePost of a non-saved post into a no-op.
	SavePolicyToggle
)

// Engagement result strings returned to clients.
const (
	ResultLiked   = "liked"
	ResultUnliked = "unliked"
	ResultSaved   = "saved"
	ResultUnsaved = "unsaved"
)

// EngagementService provides like and saved-post business logic.
type EngagementService struct {
	engagementRepo repository.EngagementRepository
	postRepo       repository.PostRepository
	savePolicy     SavePolicy
}

// NewEngagementService returns a new EngagementService with the given
// save policy.
func NewEngagementService(
	engagementRepo repository.EngagementRepository,
	postRepo repository.PostRepository,
	savePolicy SavePolicy,
) *EngagementService {
	return &EngagementService{
		engagementRepo: engagementRepo,
		postRepo:       postRepo,
		savePolicy:     savePolicy,
	}
}

// ToggleLike flips actor's like of the post and reports the resulting state.
// It never rejects a repeat call; liking twice means like then unlike.
func (s *EngagementService) ToggleLike(ctx context.Context, postID, actorID uint) (string, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return "", err
	}

	inserted, err := s.engagementRepo.AddLike(ctx, actorID, postID)
	if err != nil {
		return "", err
	}
	if inserted {
		return ResultLiked, nil
	}

	if _, err := s.engagementRepo.RemoveLike(ctx, actorID, postID); err != nil {
		return "", err
	}
	return ResultUnliked, nil
}

// SavePost adds the post to actor's saved set. Behavior on a repeated save
// depends on the configured SavePolicy.
func (s *EngagementService) SavePost(ctx context.Context, postID, actorID uint) (string, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return "", err
	}

	inserted, err := s.engagementRepo.AddSave(ctx, actorID, postID)
	if err != nil {
		return "", err
	}
	if inserted {
		return ResultSaved, nil
	}

	if s.savePolicy == SavePolicyToggle {
		if _, err := s.engagementRepo.RemoveSave(ctx, actorID, postID); err != nil {
			return "", err
		}
		return ResultUnsaved, nil
	}
	return "", models.NewAlreadyExistsError("Post already saved")
}

// UnsavePost removes the post from actor's saved set.
func (s *EngagementService) UnsavePost(ctx context.Context, postID, actorID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return err
	}

	removed, err := s.engagementRepo.RemoveSave(ctx, actorID, postID)
	if err != nil {
		return err
	}
	if !removed && s.savePolicy != SavePolicyToggle {
		return models.NewNotFoundMessage("Post not saved")
	}
	return nil
}

// ListSavedPosts returns the actor's saved posts, newest save first. Saved
// entries whose post has since been deleted are skipped.
func (s *EngagementService) ListSavedPosts(ctx context.Context, actorID uint) ([]*models.Post, error) {
	return s.engagementRepo.GetSavedPosts(ctx, actorID)
}

// IsSaved reports whether actor has the post in their saved set.
func (s *EngagementService) IsSaved(ctx context.Context, postID, actorID uint) (bool, error) {
	return s.engagementRepo.IsSaved(ctx, actorID, postID)
}
