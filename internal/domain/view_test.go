package domain_test

import (
	"reflect"
	"sync"
	"testing"

	"mockgram/internal/domain"
)

func testProfile() domain.Profile {
	return domain.Profile{
		Username:       "PAUL",
		FullName:       "PAUL-MONET ROSENBROCK",
		PostsCount:     200,
		FollowersCount: 2000,
		FollowingCount: 20,
	}
}

func testPosts(n int) []domain.Post {
	posts := make([]domain.Post, n)
	for i := range posts {
		posts[i] = domain.Post{ID: i + 1, Likes: 100 + i, Comments: 10}
	}
	return posts
}

func newTestView() *domain.ProfileView {
	return domain.NewProfileView("view-1", testProfile(), testPosts(20), "/api/placeholder/150/150")
}

func TestProfileView_InitialState(t *testing.T) {
	// Arrange
	v := newTestView()

	// Act
	s := v.Snapshot()

	// Assert
	if s.Following {
		t.Error("expected not following")
	}
	if s.ActiveTab != domain.TabPosts {
		t.Errorf("ActiveTab: got %v, want posts", s.ActiveTab)
	}
	if len(s.LikedPostIDs) != 0 {
		t.Errorf("LikedPostIDs: got %v, want empty", s.LikedPostIDs)
	}
	if len(s.Highlights) != 0 {
		t.Errorf("Highlights: got %v, want empty", s.Highlights)
	}
	if s.DisplayedFollowers() != 2000 {
		t.Errorf("DisplayedFollowers: got %d, want 2000", s.DisplayedFollowers())
	}
	if s.Profile.PostsCount != 200 || s.Profile.FollowingCount != 20 {
		t.Errorf("counts: got %d/%d, want 200/20", s.Profile.PostsCount, s.Profile.FollowingCount)
	}
	if s.FollowLabel() != "Follow" {
		t.Errorf("FollowLabel: got %q, want Follow", s.FollowLabel())
	}
}

func TestProfileView_ToggleFollow_ParityOfCalls(t *testing.T) {
	v := newTestView()

	for n := 1; n <= 7; n++ {
		v.ToggleFollow()
		s := v.Snapshot()

		wantFollowing := n%2 == 1
		if s.Following != wantFollowing {
			t.Fatalf("after %d calls: Following = %v, want %v", n, s.Following, wantFollowing)
		}
		want := 2000
		if wantFollowing {
			want = 2001
		}
		if s.DisplayedFollowers() != want {
			t.Fatalf("after %d calls: DisplayedFollowers = %d, want %d", n, s.DisplayedFollowers(), want)
		}
	}
}

func TestProfileView_ToggleFollow_Labels(t *testing.T) {
	// Arrange
	v := newTestView()

	// Act & Assert
	v.ToggleFollow()
	if got := v.Snapshot().FollowLabel(); got != "Following" {
		t.Errorf("after one click: got %q, want Following", got)
	}
	v.ToggleFollow()
	if got := v.Snapshot().FollowLabel(); got != "Follow" {
		t.Errorf("after two clicks: got %q, want Follow", got)
	}
}

func TestProfileView_ToggleLike_IsInvolution(t *testing.T) {
	v := newTestView()

	for id := 1; id <= 20; id++ {
		before := v.Snapshot().LikedPostIDs

		v.ToggleLike(id)
		v.ToggleLike(id)

		after := v.Snapshot().LikedPostIDs
		if !reflect.DeepEqual(before, after) {
			t.Fatalf("post %d: liked set changed from %v to %v", id, before, after)
		}
	}
}

func TestProfileView_ToggleLike_AdjustsDisplayedLikes(t *testing.T) {
	// Arrange
	v := newTestView()
	base, _ := v.Snapshot().Item(5)

	// Act
	liked := v.ToggleLike(5)
	item, _ := v.Snapshot().Item(5)

	// Assert
	if !liked || !item.Liked {
		t.Fatal("expected post 5 to be liked")
	}
	if item.DisplayedLikes() != base.Likes+1 {
		t.Errorf("DisplayedLikes: got %d, want %d", item.DisplayedLikes(), base.Likes+1)
	}

	// Act
	liked = v.ToggleLike(5)
	item, _ = v.Snapshot().Item(5)

	// Assert
	if liked || item.Liked {
		t.Fatal("expected post 5 to be unliked")
	}
	if item.DisplayedLikes() != base.Likes {
		t.Errorf("DisplayedLikes: got %d, want %d", item.DisplayedLikes(), base.Likes)
	}
}

func TestProfileView_ToggleLike_UnknownPostIsNoop(t *testing.T) {
	// Arrange
	v := newTestView()

	// Act
	liked := v.ToggleLike(999)
	v.ToggleLike(0)
	v.ToggleLike(-3)

	// Assert
	if liked {
		t.Error("unknown post must not be reported as liked")
	}
	if ids := v.Snapshot().LikedPostIDs; len(ids) != 0 {
		t.Errorf("LikedPostIDs: got %v, want empty", ids)
	}
}

func TestProfileView_AddHighlight_SequentialIDs(t *testing.T) {
	// Arrange
	v := newTestView()
	const k = 6

	// Act
	for i := 0; i < k; i++ {
		v.AddHighlight()
	}
	highlights := v.Snapshot().Highlights

	// Assert
	if len(highlights) != k {
		t.Fatalf("len: got %d, want %d", len(highlights), k)
	}
	for i, h := range highlights {
		if h.ID != i+1 {
			t.Errorf("highlight %d: ID = %d, want %d", i, h.ID, i+1)
		}
		if h.ImageURL != "/api/placeholder/150/150" {
			t.Errorf("highlight %d: ImageURL = %q", i, h.ImageURL)
		}
	}
}

func TestProfileView_SelectTab_LeavesOtherStateUnchanged(t *testing.T) {
	for _, tab := range domain.Tabs {
		t.Run(string(tab), func(t *testing.T) {
			// Arrange
			v := newTestView()
			v.ToggleFollow()
			v.ToggleLike(3)
			v.AddHighlight()
			before := v.Snapshot()

			// Act
			v.SelectTab(tab)
			after := v.Snapshot()

			// Assert
			if after.ActiveTab != tab {
				t.Errorf("ActiveTab: got %v, want %v", after.ActiveTab, tab)
			}
			after.ActiveTab = before.ActiveTab
			if !reflect.DeepEqual(before, after) {
				t.Errorf("state other than the active tab changed:\nbefore %+v\nafter  %+v", before, after)
			}
		})
	}
}

func TestProfileView_SelectTab_UnknownTabIsNoop(t *testing.T) {
	// Arrange
	v := newTestView()
	v.SelectTab(domain.TabSaved)

	// Act
	v.SelectTab(domain.Tab("reels"))

	// Assert
	if got := v.Snapshot().ActiveTab; got != domain.TabSaved {
		t.Errorf("ActiveTab: got %v, want saved", got)
	}
}

func TestProfileView_Snapshot_IsDetached(t *testing.T) {
	// Arrange
	v := newTestView()
	v.AddHighlight()
	s := v.Snapshot()

	// Act
	v.AddHighlight()
	v.ToggleLike(1)

	// Assert
	if len(s.Highlights) != 1 {
		t.Errorf("snapshot highlights changed: got %d", len(s.Highlights))
	}
	if item, _ := s.Item(1); item.Liked {
		t.Error("snapshot feed changed after like")
	}
}

func TestProfileView_ConcurrentLikes(t *testing.T) {
	v := newTestView()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			v.ToggleLike(id%20 + 1)
		}(i)
	}
	wg.Wait()

	// Each of the first 10 ids is toggled three times, the other 10 twice.
	want := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	if got := v.Snapshot().LikedPostIDs; !reflect.DeepEqual(got, want) {
		t.Errorf("LikedPostIDs: got %v, want %v", got, want)
	}
}

func TestParseTab(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    domain.Tab
		wantErr error
	}{
		{name: "posts", input: "posts", want: domain.TabPosts},
		{name: "liked", input: "liked", want: domain.TabLiked},
		{name: "private", input: "private", want: domain.TabPrivate},
		{name: "upper case", input: "POSTS", wantErr: domain.ErrInvalidTab},
		{name: "unknown", input: "reels", wantErr: domain.ErrInvalidTab},
		{name: "empty", input: "", wantErr: domain.ErrInvalidTab},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := domain.ParseTab(tc.input)
			if err != tc.wantErr {
				t.Fatalf("err: got %v, want %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("tab: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTab_Label(t *testing.T) {
	if got := domain.TabComments.Label(); got != "COMMENTS" {
		t.Errorf("got %q, want COMMENTS", got)
	}
}
