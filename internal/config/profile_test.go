package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mockgram/internal/config"
	"mockgram/internal/mockdata"
)

func writeProfile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParseProfile_PartialDocument_KeepsDefaults(t *testing.T) {
	// Arrange
	doc := `
profile:
  username: MONET
stats:
  followers: 10
`

	// Act
	p, err := config.ParseProfile([]byte(doc))

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := mockdata.DefaultProfile()
	if p.Username != "MONET" || p.FollowersCount != 10 {
		t.Errorf("overrides not applied: %+v", p)
	}
	if p.FullName != def.FullName || p.PostsCount != def.PostsCount || p.ProfilePictureURL != def.ProfilePictureURL {
		t.Errorf("defaults not kept: %+v", p)
	}
}

func TestParseProfile_ZeroStatIsKept(t *testing.T) {
	p, err := config.ParseProfile([]byte("stats:\n  following: 0\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.FollowingCount != 0 {
		t.Errorf("FollowingCount: got %d, want 0", p.FollowingCount)
	}
}

func TestParseProfile_InvalidDocuments_ReturnError(t *testing.T) {
	for name, doc := range map[string]string{
		"negative stat": "stats:\n  posts: -1\n",
		"not yaml":      "profile: [unclosed",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := config.ParseProfile([]byte(doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadProfile_EmptyPath_UsesDefault(t *testing.T) {
	s, err := config.LoadProfile("", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	if s.Current() != mockdata.DefaultProfile() {
		t.Errorf("got %+v, want default profile", s.Current())
	}
}

func TestLoadProfile_MissingFile_ReturnsError(t *testing.T) {
	if _, err := config.LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"), time.Second); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadProfile_ReloadsOnChange(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "profile.yaml")
	writeProfile(t, path, "profile:\n  username: BEFORE\n")
	s, err := config.LoadProfile(path, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	// Act
	writeProfile(t, path, "profile:\n  username: AFTER\n")
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	// Assert
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.Current().Username == "AFTER" {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("Username: got %q, want AFTER", s.Current().Username)
}

func TestLoadProfile_BrokenReload_KeepsLastGoodProfile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "profile.yaml")
	writeProfile(t, path, "profile:\n  username: GOOD\n")
	s, err := config.LoadProfile(path, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	// Act
	writeProfile(t, path, "stats:\n  posts: -4\n")
	future := time.Now().Add(time.Hour)
	_ = os.Chtimes(path, future, future)
	time.Sleep(100 * time.Millisecond)

	// Assert
	if got := s.Current().Username; got != "GOOD" {
		t.Errorf("Username: got %q, want GOOD", got)
	}
}
