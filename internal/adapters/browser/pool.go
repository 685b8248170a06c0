// Package browser drives headless Chrome against the running profile page.
package browser

import (
	"context"
	"os"
	"sync"

	"github.com/chromedp/chromedp"

	"mockgram/pkg/log"
)

type allocatorFunc func() (context.Context, context.CancelFunc)

// Pool manages a single Chrome connection and serializes tab usage.
type Pool struct {
	allocate allocatorFunc
	ctx      context.Context
	cancel   context.CancelFunc

	mu    sync.Mutex
	slots tabSlots
}

// NewLocalPool starts a headless Chrome process.
// CHROME_PATH overrides the executable lookup.
func NewLocalPool(options ...chromedp.ExecAllocatorOption) (*Pool, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("no-first-run", true),
	)
	opts = append(opts, options...)

	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		log.GlobalInfo("browser pool using custom chrome path", "path", chromePath)
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	return newPool(func() (context.Context, context.CancelFunc) {
		return chromedp.NewExecAllocator(context.Background(), opts...)
	})
}

// NewRemotePool connects to an already running Chrome over its DevTools websocket.
func NewRemotePool(wsURL string) (*Pool, error) {
	return newPool(func() (context.Context, context.CancelFunc) {
		return chromedp.NewRemoteAllocator(context.Background(), wsURL)
	})
}

func newPool(allocate allocatorFunc) (*Pool, error) {
	p := &Pool{
		allocate: allocate,
		slots:    newTabSlots(1),
	}
	if err := p.start(); err != nil {
		return nil, err
	}
	return p, nil
}

// start connects to Chrome, replacing any previous connection.
func (p *Pool) start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}

	allocCtx, cancel := p.allocate()
	ctx, _ := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(ctx); err != nil {
		cancel()
		return err
	}

	p.ctx = ctx
	p.cancel = cancel

	log.GlobalInfo("browser pool chrome started")
	return nil
}

// WithTab runs fn with exclusive access to a fresh tab.
// Waiting for the tab stops when ctx is done, and cancelling ctx cancels the tab.
func (p *Pool) WithTab(ctx context.Context, fn func(tabCtx context.Context) error) error {
	return runInTab(ctx, p.slots, p.acquireTab, fn)
}

// runInTab holds a slot while fn runs in the tab returned by open.
// The tab context is cancelled when ctx is done or fn returns.
func runInTab(ctx context.Context, slots tabSlots, open func() (context.Context, context.CancelFunc, error), fn func(tabCtx context.Context) error) error {
	if err := slots.acquire(ctx); err != nil {
		return err
	}
	defer slots.release()

	tabCtx, tabCancel, err := open()
	if err != nil {
		return err
	}
	defer tabCancel()

	tabCtx, cancel := context.WithCancel(tabCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return fn(tabCtx)
}

// acquireTab opens a tab, restarting Chrome once if the tab is unhealthy.
func (p *Pool) acquireTab() (context.Context, context.CancelFunc, error) {
	p.mu.Lock()
	tabCtx, tabCancel := chromedp.NewContext(p.ctx)
	p.mu.Unlock()

	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		log.GlobalWarn("browser pool tab failed, restarting chrome", "error", err.Error())

		if restartErr := p.start(); restartErr != nil {
			return nil, nil, restartErr
		}

		p.mu.Lock()
		tabCtx, tabCancel = chromedp.NewContext(p.ctx)
		p.mu.Unlock()
	}

	return tabCtx, tabCancel, nil
}

// Close shuts down the browser connection.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
		log.GlobalInfo("browser pool chrome stopped")
	}
}

// tabSlots bounds the number of concurrently open tabs.
type tabSlots chan struct{}

func newTabSlots(n int) tabSlots {
	return make(tabSlots, n)
}

func (s tabSlots) acquire(ctx context.Context) error {
	select {
	case s <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s tabSlots) release() {
	<-s
}
