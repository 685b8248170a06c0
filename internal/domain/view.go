package domain

import (
	"sort"
	"sync"
)

const (
	FollowLabel    = "Follow"
	FollowingLabel = "Following"
)

// ProfileView holds the interaction state of one mounted profile page.
// Every transition is total: it never fails and never blocks on I/O.
// Safe for concurrent use.
type ProfileView struct {
	id      string
	profile Profile
	posts   []Post
	postIDs map[int]struct{}

	// highlightImageURL is the image used for highlights added by the user.
	highlightImageURL string

	mu         sync.Mutex
	following  bool
	activeTab  Tab
	liked      map[int]struct{}
	highlights []StoryHighlight
}

// NewProfileView mounts a view with the default interaction state:
// not following, posts tab active, nothing liked and no highlights.
func NewProfileView(id string, profile Profile, posts []Post, highlightImageURL string) *ProfileView {
	ids := make(map[int]struct{}, len(posts))
	for _, p := range posts {
		ids[p.ID] = struct{}{}
	}

	return &ProfileView{
		id:                id,
		profile:           profile,
		posts:             posts,
		postIDs:           ids,
		highlightImageURL: highlightImageURL,
		activeTab:         TabPosts,
		liked:             make(map[int]struct{}),
	}
}

// ID returns the view instance id.
func (v *ProfileView) ID() string {
	return v.id
}

// ToggleFollow flips the follow state and reports the new value.
func (v *ProfileView) ToggleFollow() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.following = !v.following
	return v.following
}

// SelectTab makes tab the active tab.
// Unknown tabs leave the state unchanged. The feed does not depend on the tab.
func (v *ProfileView) SelectTab(tab Tab) {
	if !tab.Valid() {
		return
	}

	v.mu.Lock()
	v.activeTab = tab
	v.mu.Unlock()
}

// AddHighlight appends a highlight whose id is the current count + 1.
func (v *ProfileView) AddHighlight() StoryHighlight {
	v.mu.Lock()
	defer v.mu.Unlock()

	h := StoryHighlight{
		ID:       len(v.highlights) + 1,
		ImageURL: v.highlightImageURL,
	}
	v.highlights = append(v.highlights, h)
	return h
}

// ToggleLike likes postID if it is not liked yet, otherwise unlikes it.
// Ids outside the generated feed are ignored. Reports whether the post is
// liked afterwards.
func (v *ProfileView) ToggleLike(postID int) bool {
	if _, ok := v.postIDs[postID]; !ok {
		return false
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, liked := v.liked[postID]; liked {
		delete(v.liked, postID)
		return false
	}
	v.liked[postID] = struct{}{}
	return true
}

// Snapshot returns a consistent copy of the view for rendering.
func (v *ProfileView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	feed := make([]FeedItem, len(v.posts))
	for i, p := range v.posts {
		_, liked := v.liked[p.ID]
		feed[i] = FeedItem{Post: p, Liked: liked}
	}

	likedIDs := make([]int, 0, len(v.liked))
	for id := range v.liked {
		likedIDs = append(likedIDs, id)
	}
	sort.Ints(likedIDs)

	return Snapshot{
		ViewID:       v.id,
		Profile:      v.profile,
		Following:    v.following,
		ActiveTab:    v.activeTab,
		Highlights:   append([]StoryHighlight(nil), v.highlights...),
		Feed:         feed,
		LikedPostIDs: likedIDs,
	}
}

// Snapshot is an immutable copy of a ProfileView's state.
type Snapshot struct {
	ViewID       string
	Profile      Profile
	Following    bool
	ActiveTab    Tab
	Highlights   []StoryHighlight
	Feed         []FeedItem
	LikedPostIDs []int
}

// DisplayedFollowers is the base follower count plus one while following.
func (s Snapshot) DisplayedFollowers() int {
	if s.Following {
		return s.Profile.FollowersCount + 1
	}
	return s.Profile.FollowersCount
}

// FollowLabel returns the follow button text.
func (s Snapshot) FollowLabel() string {
	if s.Following {
		return FollowingLabel
	}
	return FollowLabel
}

// Item returns the feed item for postID.
func (s Snapshot) Item(postID int) (FeedItem, bool) {
	for _, item := range s.Feed {
		if item.ID == postID {
			return item, true
		}
	}
	return FeedItem{}, false
}

// FeedItem is a post with the liked overlay applied.
type FeedItem struct {
	Post
	Liked bool
}

// DisplayedLikes is the base like count plus one while liked.
func (f FeedItem) DisplayedLikes() int {
	if f.Liked {
		return f.Likes + 1
	}
	return f.Likes
}
