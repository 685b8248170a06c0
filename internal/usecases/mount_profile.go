package usecases

import (
	"context"

	"mockgram/internal/domain"
	"mockgram/pkg/log"
)

// ViewStore defines the interface for keeping mounted views.
type ViewStore interface {
	Get(viewID string) (*domain.ProfileView, bool)
	Put(view *domain.ProfileView)
	Len() int
}

// ProfileSource provides the profile shown by newly mounted views.
type ProfileSource interface {
	Current() domain.Profile
}

// PostGenerator produces the mock feed of a newly mounted view.
type PostGenerator interface {
	Posts(count int) []domain.Post
}

// MountProfileUseCase creates fresh profile views.
type MountProfileUseCase struct {
	store             ViewStore
	profiles          ProfileSource
	posts             PostGenerator
	newID             func() string
	postCount         int
	highlightImageURL string
}

// NewMountProfileUseCase creates a new MountProfileUseCase.
// newID generates view ids; postCount is the feed length of every view.
func NewMountProfileUseCase(store ViewStore, profiles ProfileSource, posts PostGenerator, newID func() string, postCount int, highlightImageURL string) *MountProfileUseCase {
	return &MountProfileUseCase{
		store:             store,
		profiles:          profiles,
		posts:             posts,
		newID:             newID,
		postCount:         postCount,
		highlightImageURL: highlightImageURL,
	}
}

// Execute mounts a new view with default interaction state and a freshly
// generated feed, and returns its first snapshot.
func (uc *MountProfileUseCase) Execute(ctx context.Context) domain.Snapshot {
	view := domain.NewProfileView(
		uc.newID(),
		uc.profiles.Current(),
		uc.posts.Posts(uc.postCount),
		uc.highlightImageURL,
	)
	uc.store.Put(view)

	log.GlobalDebugCtx(log.WithViewID(ctx, view.ID()), "view mounted", "posts", uc.postCount, "live_views", uc.store.Len())

	return view.Snapshot()
}
