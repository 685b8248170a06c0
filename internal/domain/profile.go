// Package domain contains the core profile entities and the view state holder.
package domain

import "strings"

// Profile is the identity shown in the page header.
// It is built once per view and never mutated.
type Profile struct {
	Username          string
	FullName          string
	Bio               string
	ProfilePictureURL string
	PostsCount        int
	FollowersCount    int
	FollowingCount    int
}

// Post is a single feed entry.
type Post struct {
	ID        int
	ImageURL  string
	Caption   string
	Likes     int
	Comments  int
	Timestamp string // relative label, e.g. "3h ago"
}

// StoryHighlight is a circular thumbnail shown above the feed.
type StoryHighlight struct {
	ID       int
	ImageURL string
}

// Tab identifies an entry of the profile tab bar.
type Tab string

const (
	TabPosts    Tab = "posts"
	TabComments Tab = "comments"
	TabSaved    Tab = "saved"
	TabPrivate  Tab = "private"
	TabLiked    Tab = "liked"
)

// Tabs lists the tab bar entries in display order.
var Tabs = []Tab{TabPosts, TabComments, TabSaved, TabPrivate, TabLiked}

// ParseTab returns the Tab named s.
// Returns ErrInvalidTab if s is not a known tab.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", ErrInvalidTab
}

// Valid reports whether t is one of the known tabs.
func (t Tab) Valid() bool {
	_, err := ParseTab(string(t))
	return err == nil
}

// Label returns the text shown on the tab bar.
func (t Tab) Label() string {
	return strings.ToUpper(string(t))
}
