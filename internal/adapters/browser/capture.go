package browser

import (
	"context"
	"strconv"
	"strings"

	"github.com/chromedp/chromedp"
)

// Selectors of the rendered profile page.
const (
	FeedSelector         = "#feed"
	FollowButtonSelector = "#follow-button"
	FollowersSelector    = "#stat-followers [data-stat-value]"
)

// Screenshot loads pageURL and captures the whole page as a PNG once the feed is visible.
func Screenshot(ctx context.Context, pool *Pool, pageURL string, width int64) ([]byte, error) {
	var png []byte
	err := pool.WithTab(ctx, func(tabCtx context.Context) error {
		return chromedp.Run(tabCtx,
			chromedp.EmulateViewport(width, 900),
			chromedp.Navigate(pageURL),
			chromedp.WaitVisible(FeedSelector, chromedp.ByQuery),
			chromedp.FullScreenshot(&png, 100),
		)
	})
	return png, err
}

// FollowState is what a visitor sees in the profile header.
type FollowState struct {
	Label     string
	Followers int
}

// ReadFollowState reads the follow button label and follower counter of the loaded page.
func ReadFollowState(tabCtx context.Context) (FollowState, error) {
	var label, followers string
	if err := chromedp.Run(tabCtx,
		chromedp.Text(FollowButtonSelector, &label, chromedp.ByQuery),
		chromedp.Text(FollowersSelector, &followers, chromedp.ByQuery),
	); err != nil {
		return FollowState{}, err
	}

	n, err := strconv.Atoi(strings.TrimSpace(followers))
	if err != nil {
		return FollowState{}, err
	}
	return FollowState{Label: strings.TrimSpace(label), Followers: n}, nil
}
