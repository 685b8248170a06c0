package web_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mockgram/internal/adapters/cache"
	"mockgram/internal/adapters/placeholder"
	"mockgram/internal/adapters/web"
	"mockgram/internal/config"
	"mockgram/internal/domain"
	"mockgram/internal/mockdata"
	"mockgram/internal/usecases"

	"github.com/gofiber/fiber/v2"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("view-%d", n)
	}
}

func setupApp(t *testing.T, rateLimit int) *fiber.App {
	t.Helper()

	store := cache.NewViewStore(time.Minute)
	images := placeholder.NewRenderer(2000, time.Minute)
	limiter := web.NewRateLimiter(rateLimit, time.Minute)
	t.Cleanup(func() {
		store.Close()
		images.Close()
		limiter.Close()
	})

	mount := usecases.NewMountProfileUseCase(store, config.StaticProfile(mockdata.DefaultProfile()),
		mockdata.NewSeededGenerator(42), sequentialIDs(), mockdata.DefaultPostCount, mockdata.HighlightImageURL)
	interact := usecases.NewInteractUseCase(store)

	return web.NewApp(web.NewHandlers(mount, interact, images), limiter, "")
}

func do(t *testing.T, app *fiber.App, method, target string, htmx bool) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test(%s %s) error = %v", method, target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp, string(body)
}

func assertStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status = %d, want %d", resp.StatusCode, want)
	}
}

func TestHome_MountsDefaultView(t *testing.T) {
	// Arrange
	app := setupApp(t, 0)

	// Act
	resp, body := do(t, app, "GET", "/", false)

	// Assert
	assertStatus(t, resp, 200)
	for _, want := range []string{
		`data-view-id="view-1"`,
		`>Follow</button>`,
		`>2000</span>`,
		`>PAUL</h1>`,
		`role="tablist"`,
		`role="tab" class=`,
		`aria-selected="true" data-tab="posts"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
	if strings.Count(body, "<article") != 20 {
		t.Errorf("expected 20 posts, got %d", strings.Count(body, "<article"))
	}
	if strings.Contains(body, "data-highlight-id") {
		t.Error("a fresh view has no highlights")
	}
}

func TestHome_EachLoadStartsFresh(t *testing.T) {
	// Arrange
	app := setupApp(t, 0)
	do(t, app, "GET", "/", false)
	do(t, app, "POST", "/views/view-1/follow", true)

	// Act
	_, body := do(t, app, "GET", "/", false)

	// Assert
	if !strings.Contains(body, `data-view-id="view-2"`) {
		t.Fatal("reload should mount a new view")
	}
	if !strings.Contains(body, `>Follow</button>`) || !strings.Contains(body, `>2000</span>`) {
		t.Error("remounted view should not be followed")
	}
}

func TestToggleFollow_HTMXReturnsHeaderFragment(t *testing.T) {
	// Arrange
	app := setupApp(t, 0)
	do(t, app, "GET", "/", false)

	// Act
	resp, first := do(t, app, "POST", "/views/view-1/follow", true)
	_, second := do(t, app, "POST", "/views/view-1/follow", true)

	// Assert
	assertStatus(t, resp, 200)
	if strings.Contains(first, "<html") {
		t.Error("HTMX response should be a fragment")
	}
	if !strings.Contains(first, `id="profile-header"`) {
		t.Error("fragment should replace the profile header")
	}
	if !strings.Contains(first, `>Following</button>`) || !strings.Contains(first, `>2001</span>`) {
		t.Errorf("after one toggle expected Following and 2001:\n%s", first)
	}
	if !strings.Contains(second, `>Follow</button>`) || !strings.Contains(second, `>2000</span>`) {
		t.Errorf("after two toggles expected Follow and 2000:\n%s", second)
	}
}

func TestToggleFollow_PlainFormRedirectsToView(t *testing.T) {
	// Arrange
	app := setupApp(t, 0)
	do(t, app, "GET", "/", false)

	// Act
	resp, _ := do(t, app, "POST", "/views/view-1/follow", false)
	_, page := do(t, app, "GET", "/views/view-1", false)

	// Assert
	assertStatus(t, resp, fiber.StatusSeeOther)
	if loc := resp.Header.Get("Location"); loc != "/views/view-1" {
		t.Errorf("Location = %q, want /views/view-1", loc)
	}
	if !strings.Contains(page, `>Following</button>`) || !strings.Contains(page, `>2001</span>`) {
		t.Error("redirected page should keep the followed state")
	}
}

func TestToggleLike_TogglesOnlyThatPost(t *testing.T) {
	// Arrange
	app := setupApp(t, 0)
	do(t, app, "GET", "/", false)

	// Act
	resp, liked := do(t, app, "POST", "/views/view-1/posts/3/like", true)
	_, page := do(t, app, "GET", "/views/view-1", false)
	_, unliked := do(t, app, "POST", "/views/view-1/posts/3/like", true)

	// Assert
	assertStatus(t, resp, 200)
	if !strings.Contains(liked, `id="post-3-actions"`) || !strings.Contains(liked, `data-liked="true"`) {
		t.Errorf("expected liked action row for post 3:\n%s", liked)
	}
	if strings.Count(page, `data-liked="true"`) != 1 {
		t.Errorf("exactly one post should be liked, got %d", strings.Count(page, `data-liked="true"`))
	}
	if !strings.Contains(unliked, `data-liked="false"`) {
		t.Error("second like should clear the liked state")
	}
}

func TestToggleLike_UnknownPostIsNoOp(t *testing.T) {
	// Arrange
	app := setupApp(t, 0)
	do(t, app, "GET", "/", false)

	// Act
	resp, body := do(t, app, "POST", "/views/view-1/posts/99/like", true)
	_, page := do(t, app, "GET", "/views/view-1", false)

	// Assert
	assertStatus(t, resp, 200)
	if body != "" {
		t.Errorf("expected empty fragment, got %q", body)
	}
	if strings.Contains(page, `data-liked="true"`) {
		t.Error("no post should be liked")
	}
}

func TestToggleLike_InvalidPostID(t *testing.T) {
	app := setupApp(t, 0)
	do(t, app, "GET", "/", false)

	resp, body := do(t, app, "POST", "/views/view-1/posts/abc/like", true)

	assertStatus(t, resp, 400)
	if !strings.Contains(body, "That post couldn") || !strings.Contains(body, `role="alert"`) {
		t.Errorf("unexpected error body: %s", body)
	}
}

func TestSelectTab_MovesActiveIndicator(t *testing.T) {
	// Arrange
	app := setupApp(t, 0)
	do(t, app, "GET", "/", false)

	// Act
	resp, body := do(t, app, "POST", "/views/view-1/tabs/saved", true)
	_, page := do(t, app, "GET", "/views/view-1", false)

	// Assert
	assertStatus(t, resp, 200)
	if !strings.Contains(body, `aria-selected="true" data-tab="saved"`) {
		t.Errorf("saved tab should be active:\n%s", body)
	}
	if strings.Count(body, `aria-selected="true"`) != 1 {
		t.Error("exactly one tab should be active")
	}
	if strings.Count(body, `role="tab"`) != 5 || strings.Count(body, `aria-selected="false"`) != 4 {
		t.Errorf("every tab should carry role and selection state:\n%s", body)
	}
	if strings.Count(page, "<article") != 20 {
		t.Error("selecting a tab should not filter the feed")
	}
}

func TestSelectTab_UnknownTab(t *testing.T) {
	app := setupApp(t, 0)
	do(t, app, "GET", "/", false)

	resp, _ := do(t, app, "POST", "/views/view-1/tabs/reels", true)
	assertStatus(t, resp, 400)

	_, page := do(t, app, "GET", "/views/view-1", false)
	if !strings.Contains(page, `aria-selected="true" data-tab="posts"`) {
		t.Error("active tab should stay on posts")
	}
}

func TestAddHighlight_AppendsSequentially(t *testing.T) {
	// Arrange
	app := setupApp(t, 0)
	do(t, app, "GET", "/", false)

	// Act
	do(t, app, "POST", "/views/view-1/highlights", true)
	resp, body := do(t, app, "POST", "/views/view-1/highlights", true)

	// Assert
	assertStatus(t, resp, 200)
	if !strings.Contains(body, `id="highlights"`) {
		t.Error("fragment should replace the highlight strip")
	}
	if strings.Count(body, "data-highlight-id=") != 2 {
		t.Errorf("expected 2 highlights, got %d", strings.Count(body, "data-highlight-id="))
	}
	if strings.Index(body, `data-highlight-id="1"`) > strings.Index(body, `data-highlight-id="2"`) {
		t.Error("highlights should keep insertion order")
	}
}

func TestUnknownView(t *testing.T) {
	app := setupApp(t, 0)

	t.Run("page", func(t *testing.T) {
		resp, body := do(t, app, "GET", "/views/missing", false)
		assertStatus(t, resp, 404)
		if !strings.Contains(body, "This profile page has expired.") || !strings.Contains(body, `href="/"`) {
			t.Errorf("unexpected error page: %s", body)
		}
	})

	t.Run("htmx", func(t *testing.T) {
		resp, _ := do(t, app, "POST", "/views/missing/follow", true)
		assertStatus(t, resp, 404)
		if resp.Header.Get("HX-Redirect") != "/" {
			t.Error("HTMX clients should be sent back to a fresh page")
		}
	})
}

func TestPlaceholder(t *testing.T) {
	app := setupApp(t, 0)

	t.Run("valid", func(t *testing.T) {
		resp, body := do(t, app, "GET", "/api/placeholder/150/150", false)
		assertStatus(t, resp, 200)
		if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("Content-Type = %q, want image/png", ct)
		}
		if !bytes.HasPrefix([]byte(body), []byte("\x89PNG")) {
			t.Error("body should be a PNG")
		}
	})

	for _, target := range []string{"/api/placeholder/0/150", "/api/placeholder/abc/150", "/api/placeholder/5000/10"} {
		t.Run(target, func(t *testing.T) {
			resp, _ := do(t, app, "GET", target, false)
			assertStatus(t, resp, 400)
		})
	}
}

type failingRenderer struct{ err error }

func (r failingRenderer) PNG(int, int) ([]byte, error) { return nil, r.err }

func TestPlaceholder_RendererErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"out of range", domain.ErrInvalidDimensions, fiber.StatusBadRequest},
		{"render failure", errors.New("encoder exploded"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			store := cache.NewViewStore(time.Minute)
			limiter := web.NewRateLimiter(0, time.Minute)
			t.Cleanup(func() {
				store.Close()
				limiter.Close()
			})
			mount := usecases.NewMountProfileUseCase(store, config.StaticProfile(mockdata.DefaultProfile()),
				mockdata.NewSeededGenerator(1), sequentialIDs(), mockdata.DefaultPostCount, mockdata.HighlightImageURL)
			app := web.NewApp(web.NewHandlers(mount, usecases.NewInteractUseCase(store), failingRenderer{tt.err}), limiter, "")

			// Act
			resp, body := do(t, app, "GET", "/api/placeholder/10/10", false)

			// Assert
			assertStatus(t, resp, tt.want)
			if strings.Contains(body, "encoder exploded") {
				t.Error("internal errors must not leak to the client")
			}
		})
	}
}

func TestRateLimit_RejectsExcessInteractions(t *testing.T) {
	// Arrange
	app := setupApp(t, 2)
	do(t, app, "GET", "/", false)

	// Act
	first, _ := do(t, app, "POST", "/views/view-1/follow", true)
	second, _ := do(t, app, "POST", "/views/view-1/follow", true)
	third, body := do(t, app, "POST", "/views/view-1/follow", true)

	// Assert
	assertStatus(t, first, 200)
	assertStatus(t, second, 200)
	assertStatus(t, third, fiber.StatusTooManyRequests)
	if !strings.Contains(body, "Too many requests.") {
		t.Errorf("unexpected body: %s", body)
	}

	// Page loads are not limited
	resp, _ := do(t, app, "GET", "/views/view-1", false)
	assertStatus(t, resp, 200)
}
