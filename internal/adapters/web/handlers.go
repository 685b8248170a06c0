package web

import (
	"errors"

	"mockgram/internal/domain"
	"mockgram/internal/usecases"
	"mockgram/pkg/log"
	"mockgram/templates/components"
	"mockgram/templates/pages"
	"mockgram/templates/partials"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// PlaceholderRenderer renders placeholder images.
type PlaceholderRenderer interface {
	PNG(width, height int) ([]byte, error)
}

// Handlers contains the HTTP handlers for the web application.
type Handlers struct {
	mount    *usecases.MountProfileUseCase
	interact *usecases.InteractUseCase
	images   PlaceholderRenderer
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(mount *usecases.MountProfileUseCase, interact *usecases.InteractUseCase, images PlaceholderRenderer) *Handlers {
	return &Handlers{
		mount:    mount,
		interact: interact,
		images:   images,
	}
}

// render is a helper to render templ components.
func render(c *fiber.Ctx, component templ.Component) error {
	c.Set("Content-Type", "text/html")
	return adaptor.HTTPHandler(templ.Handler(component))(c)
}

// renderStatus renders a component with a non-200 status code.
func renderStatus(c *fiber.Ctx, status int, component templ.Component) error {
	c.Status(status)
	c.Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.UserContext(), c.Response().BodyWriter())
}

// isHTMX reports whether the request was issued by HTMX.
func isHTMX(c *fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}

// Home mounts a fresh view and renders the full profile page.
// Every page load starts from the default interaction state.
func (h *Handlers) Home(c *fiber.Ctx) error {
	snapshot := h.mount.Execute(c.UserContext())
	return render(c, pages.Profile(snapshot))
}

// ViewProfile renders the current state of a mounted view.
// Plain form posts are redirected here after each action.
func (h *Handlers) ViewProfile(c *fiber.Ctx) error {
	snapshot, err := h.interact.View(c.UserContext(), c.Params("view"))
	if err != nil {
		return renderError(c, err)
	}
	return render(c, pages.Profile(snapshot))
}

// ToggleFollow handles the Follow/Following button.
func (h *Handlers) ToggleFollow(c *fiber.Ctx) error {
	snapshot, err := h.interact.ToggleFollow(c.UserContext(), c.Params("view"))
	if err != nil {
		return renderError(c, err)
	}
	return respond(c, snapshot, partials.ProfileHeader(snapshot))
}

// SelectTab handles a click on the tab bar.
func (h *Handlers) SelectTab(c *fiber.Ctx) error {
	tab, err := domain.ParseTab(c.Params("tab"))
	if err != nil {
		log.GlobalWarnCtx(c.UserContext(), "invalid tab", "tab", c.Params("tab"))
		return renderError(c, err)
	}

	snapshot, err := h.interact.SelectTab(c.UserContext(), c.Params("view"), tab)
	if err != nil {
		return renderError(c, err)
	}
	return respond(c, snapshot, partials.TabBar(snapshot))
}

// AddHighlight handles the add control of the highlight strip.
func (h *Handlers) AddHighlight(c *fiber.Ctx) error {
	snapshot, err := h.interact.AddHighlight(c.UserContext(), c.Params("view"))
	if err != nil {
		return renderError(c, err)
	}
	return respond(c, snapshot, partials.HighlightStrip(snapshot))
}

// ToggleLike handles the like button of a post.
// Ids outside the feed leave the state untouched and re-render an empty row.
func (h *Handlers) ToggleLike(c *fiber.Ctx) error {
	postID, err := ParsePostID(c.Params("post"))
	if err != nil {
		log.GlobalWarnCtx(c.UserContext(), "invalid post id", "post", c.Params("post"))
		return renderError(c, err)
	}

	snapshot, err := h.interact.ToggleLike(c.UserContext(), c.Params("view"), postID)
	if err != nil {
		return renderError(c, err)
	}

	item, found := snapshot.Item(postID)
	if !found {
		return respond(c, snapshot, templ.NopComponent)
	}
	return respond(c, snapshot, partials.PostActions(snapshot.ViewID, item))
}

// Placeholder serves a gray PNG of the requested size.
func (h *Handlers) Placeholder(c *fiber.Ctx) error {
	width, height, err := ParseDimensions(c.Params("width"), c.Params("height"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(friendlyError(err))
	}

	data, err := h.images.PNG(width, height)
	if errors.Is(err, domain.ErrInvalidDimensions) {
		return c.Status(fiber.StatusBadRequest).SendString(friendlyError(err))
	}
	if err != nil {
		log.GlobalErrorCtx(c.UserContext(), "placeholder render failed", "width", width, "height", height, "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString(friendlyError(err))
	}

	c.Set("Cache-Control", "public, max-age=86400")
	c.Type("png")
	return c.Send(data)
}

// respond sends the swapped fragment to HTMX, and redirects plain form posts
// back to the view page.
func respond(c *fiber.Ctx, snapshot domain.Snapshot, fragment templ.Component) error {
	if isHTMX(c) {
		return render(c, fragment)
	}
	return c.Redirect(partials.ViewPath(snapshot.ViewID), fiber.StatusSeeOther)
}

// renderError renders the error as a page, or as an inline message for HTMX.
// An expired view sends HTMX clients back to a fresh page.
func renderError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	msg := friendlyError(err)

	if isHTMX(c) {
		if errors.Is(err, domain.ErrViewNotFound) {
			c.Set("HX-Redirect", "/")
		}
		return renderStatus(c, status, components.ErrorMessage(msg))
	}
	return renderStatus(c, status, pages.Error(msg))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrViewNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTab), errors.Is(err, domain.ErrInvalidPostID), errors.Is(err, domain.ErrInvalidDimensions):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrRateLimited):
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// friendlyError returns a neutral, non-blaming error message.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, domain.ErrViewNotFound):
		return "This profile page has expired. Reload to start again."
	case errors.Is(err, domain.ErrInvalidTab):
		return "That tab doesn't exist."
	case errors.Is(err, domain.ErrInvalidPostID):
		return "That post couldn't be found."
	case errors.Is(err, domain.ErrInvalidDimensions):
		return "Placeholder size must be a positive number of pixels within the allowed range."
	case errors.Is(err, domain.ErrRateLimited):
		return "Too many requests. Please wait a moment and try again."
	default:
		return "Something went wrong. Please try again in a moment."
	}
}
