// Package mockdata generates the placeholder content shown on a profile page.
package mockdata

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"mockgram/internal/domain"
)

// DefaultPostCount is the number of posts generated for a mounted view.
const DefaultPostCount = 20

// Captions is the caption sequence cycled through by the feed.
var Captions = []string{
	"POST 1",
	"POST 2",
	"POST 3",
	"POST 4",
	"POST 5",
	"POST 6",
	"POST 7",
	"POST 8",
	"POST 9",
	"POST 10",
}

// PlaceholderURL returns the placeholder image path for the given size.
func PlaceholderURL(width, height int) string {
	return fmt.Sprintf("/api/placeholder/%d/%d", width, height)
}

var (
	PostImageURL      = PlaceholderURL(800, 600)
	HighlightImageURL = PlaceholderURL(150, 150)
	AvatarImageURL    = PlaceholderURL(150, 150)
)

// DefaultProfile returns the built-in profile used when no profile file is configured.
func DefaultProfile() domain.Profile {
	return domain.Profile{
		Username:          "PAUL",
		FullName:          "PAUL-MONET ROSENBROCK",
		Bio:               "Painter of placeholder skies.",
		ProfilePictureURL: AvatarImageURL,
		PostsCount:        200,
		FollowersCount:    2000,
		FollowingCount:    20,
	}
}

// Generator produces mock posts from an injectable random source.
// Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator drawing from src.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// NewSeededGenerator creates a generator with a deterministic PCG source.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.NewPCG(seed, seed))
}

// NewRandomGenerator creates a generator seeded from the runtime's random source.
func NewRandomGenerator() *Generator {
	return NewGenerator(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Posts generates count posts with ids 1..count.
// Captions cycle through Captions by index; likes, comments and the
// relative timestamp are drawn independently per post.
func (g *Generator) Posts(count int) []domain.Post {
	if count < 0 {
		count = 0
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	posts := make([]domain.Post, count)
	for i := range posts {
		posts[i] = domain.Post{
			ID:        i + 1,
			ImageURL:  PostImageURL,
			Caption:   Captions[i%len(Captions)],
			Likes:     g.rng.IntN(1000) + 100,
			Comments:  g.rng.IntN(100) + 10,
			Timestamp: fmt.Sprintf("%dh ago", g.rng.IntN(23)+1),
		}
	}
	return posts
}
