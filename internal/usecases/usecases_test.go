package usecases_test

import (
	"context"
	"strconv"
	"testing"

	"mockgram/internal/domain"
	"mockgram/internal/mockdata"
	"mockgram/internal/usecases"
)

// MockStore is a mock implementation of ViewStore.
type MockStore struct {
	views map[string]*domain.ProfileView
}

func NewMockStore() *MockStore {
	return &MockStore{views: make(map[string]*domain.ProfileView)}
}

func (m *MockStore) Get(viewID string) (*domain.ProfileView, bool) {
	v, found := m.views[viewID]
	return v, found
}

func (m *MockStore) Put(view *domain.ProfileView) {
	m.views[view.ID()] = view
}

func (m *MockStore) Len() int { return len(m.views) }

// StaticProfiles is a ProfileSource returning a fixed profile.
type StaticProfiles struct {
	profile domain.Profile
}

func (s StaticProfiles) Current() domain.Profile { return s.profile }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return "view-" + strconv.Itoa(n)
	}
}

func newMountUseCase(store *MockStore) *usecases.MountProfileUseCase {
	return usecases.NewMountProfileUseCase(
		store,
		StaticProfiles{profile: mockdata.DefaultProfile()},
		mockdata.NewSeededGenerator(1),
		sequentialIDs(),
		mockdata.DefaultPostCount,
		mockdata.HighlightImageURL,
	)
}

// MountProfileUseCase tests

func TestMountProfileUseCase_Execute_DefaultState(t *testing.T) {
	// Arrange
	store := NewMockStore()
	uc := newMountUseCase(store)

	// Act
	s := uc.Execute(context.Background())

	// Assert
	if s.ViewID != "view-1" {
		t.Errorf("ViewID: got %q, want view-1", s.ViewID)
	}
	if _, found := store.Get("view-1"); !found {
		t.Error("expected mounted view to be stored")
	}
	if s.Following || s.ActiveTab != domain.TabPosts || len(s.Highlights) != 0 || len(s.LikedPostIDs) != 0 {
		t.Errorf("unexpected initial state: %+v", s)
	}
	if len(s.Feed) != 20 {
		t.Errorf("Feed: got %d posts, want 20", len(s.Feed))
	}
	if s.DisplayedFollowers() != 2000 {
		t.Errorf("DisplayedFollowers: got %d, want 2000", s.DisplayedFollowers())
	}
}

func TestMountProfileUseCase_Execute_RemountResetsState(t *testing.T) {
	// Arrange
	store := NewMockStore()
	mount := newMountUseCase(store)
	interact := usecases.NewInteractUseCase(store)
	first := mount.Execute(context.Background())
	_, _ = interact.ToggleFollow(context.Background(), first.ViewID)

	// Act
	second := mount.Execute(context.Background())

	// Assert
	if second.ViewID == first.ViewID {
		t.Fatal("remount should create a new view")
	}
	if second.Following {
		t.Error("remounted view should start unfollowed")
	}
	if store.Len() != 2 {
		t.Errorf("live views: got %d, want 2", store.Len())
	}
}

// InteractUseCase tests

func TestInteractUseCase_UnknownView_ReturnsErrViewNotFound(t *testing.T) {
	// Arrange
	uc := usecases.NewInteractUseCase(NewMockStore())
	ctx := context.Background()

	// Act & Assert
	calls := map[string]func() error{
		"view":      func() error { _, err := uc.View(ctx, "missing"); return err },
		"follow":    func() error { _, err := uc.ToggleFollow(ctx, "missing"); return err },
		"tab":       func() error { _, err := uc.SelectTab(ctx, "missing", domain.TabSaved); return err },
		"highlight": func() error { _, err := uc.AddHighlight(ctx, "missing"); return err },
		"like":      func() error { _, err := uc.ToggleLike(ctx, "missing", 1); return err },
	}
	for name, call := range calls {
		if err := call(); err != domain.ErrViewNotFound {
			t.Errorf("%s: expected ErrViewNotFound, got %v", name, err)
		}
	}
}

func TestInteractUseCase_ToggleFollow_FollowScenario(t *testing.T) {
	// Arrange
	store := NewMockStore()
	view := newMountUseCase(store).Execute(context.Background())
	uc := usecases.NewInteractUseCase(store)

	// Act
	once, err := uc.ToggleFollow(context.Background(), view.ViewID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, _ := uc.ToggleFollow(context.Background(), view.ViewID)

	// Assert
	if once.FollowLabel() != "Following" || once.DisplayedFollowers() != 2001 {
		t.Errorf("after one click: %q/%d, want Following/2001", once.FollowLabel(), once.DisplayedFollowers())
	}
	if twice.FollowLabel() != "Follow" || twice.DisplayedFollowers() != 2000 {
		t.Errorf("after two clicks: %q/%d, want Follow/2000", twice.FollowLabel(), twice.DisplayedFollowers())
	}
}

func TestInteractUseCase_ToggleLike_LikeScenario(t *testing.T) {
	// Arrange
	store := NewMockStore()
	view := newMountUseCase(store).Execute(context.Background())
	base, _ := view.Item(5)
	uc := usecases.NewInteractUseCase(store)

	// Act
	liked, _ := uc.ToggleLike(context.Background(), view.ViewID, 5)
	unliked, _ := uc.ToggleLike(context.Background(), view.ViewID, 5)

	// Assert
	item, _ := liked.Item(5)
	if !item.Liked || item.DisplayedLikes() != base.Likes+1 {
		t.Errorf("after like: liked=%v likes=%d, want true/%d", item.Liked, item.DisplayedLikes(), base.Likes+1)
	}
	item, _ = unliked.Item(5)
	if item.Liked || item.DisplayedLikes() != base.Likes {
		t.Errorf("after unlike: liked=%v likes=%d, want false/%d", item.Liked, item.DisplayedLikes(), base.Likes)
	}
}

func TestInteractUseCase_SelectTab_FeedUnchanged(t *testing.T) {
	// Arrange
	store := NewMockStore()
	view := newMountUseCase(store).Execute(context.Background())
	uc := usecases.NewInteractUseCase(store)

	for _, tab := range domain.Tabs {
		// Act
		s, err := uc.SelectTab(context.Background(), view.ViewID, tab)

		// Assert
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tab, err)
		}
		if s.ActiveTab != tab {
			t.Errorf("ActiveTab: got %v, want %v", s.ActiveTab, tab)
		}
		if len(s.Feed) != len(view.Feed) {
			t.Errorf("%s: feed length changed to %d", tab, len(s.Feed))
		}
	}
}

func TestInteractUseCase_AddHighlight_AppendsInOrder(t *testing.T) {
	// Arrange
	store := NewMockStore()
	view := newMountUseCase(store).Execute(context.Background())
	uc := usecases.NewInteractUseCase(store)

	// Act
	var s domain.Snapshot
	for i := 0; i < 3; i++ {
		s, _ = uc.AddHighlight(context.Background(), view.ViewID)
	}

	// Assert
	if len(s.Highlights) != 3 {
		t.Fatalf("len: got %d, want 3", len(s.Highlights))
	}
	for i, h := range s.Highlights {
		if h.ID != i+1 {
			t.Errorf("highlight %d: ID = %d, want %d", i, h.ID, i+1)
		}
	}
}
