package usecases

import (
	"context"

	"mockgram/internal/domain"
	"mockgram/pkg/log"
)

// InteractUseCase applies user input events to mounted views.
type InteractUseCase struct {
	store ViewStore
}

// NewInteractUseCase creates a new InteractUseCase.
func NewInteractUseCase(store ViewStore) *InteractUseCase {
	return &InteractUseCase{store: store}
}

// View returns the current snapshot of a mounted view.
func (uc *InteractUseCase) View(ctx context.Context, viewID string) (domain.Snapshot, error) {
	return uc.apply(ctx, viewID, "view", func(*domain.ProfileView) []any { return nil })
}

// ToggleFollow flips the follow state of the view.
func (uc *InteractUseCase) ToggleFollow(ctx context.Context, viewID string) (domain.Snapshot, error) {
	return uc.apply(ctx, viewID, "follow toggled", func(v *domain.ProfileView) []any {
		return []any{"following", v.ToggleFollow()}
	})
}

// SelectTab changes the active tab of the view.
func (uc *InteractUseCase) SelectTab(ctx context.Context, viewID string, tab domain.Tab) (domain.Snapshot, error) {
	return uc.apply(ctx, viewID, "tab selected", func(v *domain.ProfileView) []any {
		v.SelectTab(tab)
		return []any{"tab", string(tab)}
	})
}

// AddHighlight appends a story highlight to the view.
func (uc *InteractUseCase) AddHighlight(ctx context.Context, viewID string) (domain.Snapshot, error) {
	return uc.apply(ctx, viewID, "highlight added", func(v *domain.ProfileView) []any {
		return []any{"highlight_id", v.AddHighlight().ID}
	})
}

// ToggleLike likes or unlikes a post of the view.
func (uc *InteractUseCase) ToggleLike(ctx context.Context, viewID string, postID int) (domain.Snapshot, error) {
	return uc.apply(ctx, viewID, "like toggled", func(v *domain.ProfileView) []any {
		return []any{"post_id", postID, "liked", v.ToggleLike(postID)}
	})
}

// apply looks up the view, runs the transition and returns the resulting snapshot.
func (uc *InteractUseCase) apply(ctx context.Context, viewID, event string, transition func(*domain.ProfileView) []any) (domain.Snapshot, error) {
	ctx = log.WithViewID(ctx, viewID)

	view, found := uc.store.Get(viewID)
	if !found {
		log.GlobalDebugCtx(ctx, "view not found")
		return domain.Snapshot{}, domain.ErrViewNotFound
	}

	if fields := transition(view); fields != nil {
		log.GlobalDebugCtx(ctx, event, fields...)
	}

	return view.Snapshot(), nil
}
