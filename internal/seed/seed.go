package seed

import (
	"fmt"
	"log"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with realistic development data: a user
// base, a follow mesh between them, and engagement (posts, likes, saves,
// comments) on top.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db, opts),
	}
}

// ClearAll removes all seeded data. Order matters: engagement rows reference
// posts and users, so they go first.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []any{
		&models.Comment{},
		&models.Like{},
		&models.SavedPost{},
		&models.Follow{},
		&models.Post{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(table).Error; err != nil {
			return fmt.Errorf("clear %T: %w", table, err)
		}
	}
	return nil
}

// SeedSocialMesh creates numUsers accounts and a follow mesh between them.
// Each user follows a random subset of the others, so following feeds have
// material from several authors.
func (s *Seeder) SeedSocialMesh(numUsers int) ([]*models.User, error) {
	log.Printf("Seeding %d users...", numUsers)

	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user %d: %w", i, err)
		}
		users = append(users, user)
	}

	if len(users) < 2 {
		return users, nil
	}

	log.Println("Seeding follow mesh...")
	edges := 0
	for _, follower := range users {
		// Follow between 10% and 30% of the user base.
		targets := 1 + s.factory.rand.Intn(maxInt(1, len(users)*3/10))
		for j := 0; j < targets; j++ {
			followee := users[s.factory.rand.Intn(len(users))]
			if followee.ID == follower.ID {
				continue
			}
			if err := s.factory.CreateFollow(follower, followee); err != nil {
				return nil, fmt.Errorf("create follow: %w", err)
			}
			edges++
		}
	}
	log.Printf("Created %d users and %d follow edges", len(users), edges)
	return users, nil
}

// SeedEngagement creates numPosts posts spread across the given users, then
// layers likes, saves, and comments on top. Like volume is skewed so the
// popular feed has a clear head.
func (s *Seeder) SeedEngagement(users []*models.User, numPosts int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to attach posts to")
	}

	log.Printf("Seeding %d posts...", numPosts)
	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.factory.rand.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(author))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("create posts: %w", err)
	}

	log.Println("Seeding likes, saves, and comments...")
	var likes, saves, comments int
	for i, post := range posts {
		// Roughly a fifth of posts get an outsized like count.
		likers := s.factory.rand.Intn(maxInt(1, len(users)/4))
		if i%5 == 0 {
			likers = len(users) / 2
		}
		for j := 0; j < likers; j++ {
			if err := s.factory.CreateLike(users[s.factory.rand.Intn(len(users))], post); err != nil {
				return nil, fmt.Errorf("create like: %w", err)
			}
			likes++
		}

		savers := s.factory.rand.Intn(maxInt(1, len(users)/10))
		for j := 0; j < savers; j++ {
			if err := s.factory.CreateSave(users[s.factory.rand.Intn(len(users))], post); err != nil {
				return nil, fmt.Errorf("create save: %w", err)
			}
			saves++
		}

		commenters := s.factory.rand.Intn(4)
		for j := 0; j < commenters; j++ {
			if _, err := s.factory.CreateComment(users[s.factory.rand.Intn(len(users))], post); err != nil {
				return nil, fmt.Errorf("create comment: %w", err)
			}
			comments++
		}
	}

	log.Printf("Created %d posts, ~%d likes, ~%d saves, %d comments", len(posts), likes, saves, comments)
	return posts, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
