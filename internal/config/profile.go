package config

import (
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"mockgram/internal/domain"
	"mockgram/internal/mockdata"
	"mockgram/pkg/log"
)

// ProfileSource serves the profile for newly mounted views.
// A file-backed source is polled and reloaded when the file changes;
// views that are already mounted keep the profile they were built with.
type ProfileSource struct {
	mu          sync.RWMutex
	profile     domain.Profile
	lastModTime time.Time
	filePath    string
	stop        chan struct{}
	once        sync.Once
}

// rawProfile represents the YAML structure.
type rawProfile struct {
	Profile struct {
		Username string `yaml:"username"`
		FullName string `yaml:"full_name"`
		Bio      string `yaml:"bio"`
		Picture  string `yaml:"picture"`
	} `yaml:"profile"`
	Stats struct {
		Posts     *int `yaml:"posts"`
		Followers *int `yaml:"followers"`
		Following *int `yaml:"following"`
	} `yaml:"stats"`
}

// StaticProfile returns a source that always serves p.
func StaticProfile(p domain.Profile) *ProfileSource {
	return &ProfileSource{profile: p, stop: make(chan struct{})}
}

// LoadProfile loads the profile from a YAML file and watches it for changes.
// An empty path yields the built-in default profile. A zero pollInterval
// loads the file once.
func LoadProfile(filePath string, pollInterval time.Duration) (*ProfileSource, error) {
	if filePath == "" {
		return StaticProfile(mockdata.DefaultProfile()), nil
	}

	s := &ProfileSource{filePath: filePath, stop: make(chan struct{})}
	if err := s.reload(); err != nil {
		return nil, err
	}

	if pollInterval > 0 {
		go s.watch(pollInterval)
	}

	return s, nil
}

// Current returns the profile for a view mounted now.
func (s *ProfileSource) Current() domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Close stops watching the file. Safe to call multiple times.
func (s *ProfileSource) Close() {
	s.once.Do(func() { close(s.stop) })
}

// reload reads the profile from the file.
// Missing fields keep their default values.
func (s *ProfileSource) reload() error {
	info, err := os.Stat(s.filePath)
	if err != nil {
		return errors.Wrap(err, "stat profile file")
	}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return errors.Wrap(err, "reading profile file")
	}

	profile, err := ParseProfile(data)
	if err != nil {
		return errors.Wrapf(err, "parsing %s", s.filePath)
	}

	s.mu.Lock()
	s.profile = profile
	s.lastModTime = info.ModTime()
	s.mu.Unlock()

	return nil
}

// ParseProfile decodes a profile YAML document over the default profile.
func ParseProfile(data []byte) (domain.Profile, error) {
	var raw rawProfile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.Profile{}, err
	}

	p := mockdata.DefaultProfile()
	setString(&p.Username, raw.Profile.Username)
	setString(&p.FullName, raw.Profile.FullName)
	setString(&p.Bio, raw.Profile.Bio)
	setString(&p.ProfilePictureURL, raw.Profile.Picture)

	for _, stat := range []struct {
		dst *int
		src *int
	}{
		{&p.PostsCount, raw.Stats.Posts},
		{&p.FollowersCount, raw.Stats.Followers},
		{&p.FollowingCount, raw.Stats.Following},
	} {
		if stat.src == nil {
			continue
		}
		if *stat.src < 0 {
			return domain.Profile{}, errors.Errorf("stats must not be negative, got %d", *stat.src)
		}
		*stat.dst = *stat.src
	}

	return p, nil
}

func setString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// watch polls the file and reloads it when its modification time changes.
// A broken file keeps the last good profile.
func (s *ProfileSource) watch(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
		case <-s.stop:
			return
		}

		info, err := os.Stat(s.filePath)
		if err != nil {
			continue
		}

		s.mu.RLock()
		changed := info.ModTime().After(s.lastModTime)
		s.mu.RUnlock()
		if !changed {
			continue
		}

		if err := s.reload(); err != nil {
			log.GlobalWarn("profile reload failed", "path", s.filePath, "error", err.Error())
			s.mu.Lock()
			s.lastModTime = info.ModTime()
			s.mu.Unlock()
			continue
		}
		log.GlobalInfo("profile reloaded", "path", s.filePath)
	}
}
