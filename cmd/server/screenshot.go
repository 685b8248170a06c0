package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"mockgram/internal/adapters/browser"
	"mockgram/internal/adapters/cache"
	"mockgram/internal/adapters/placeholder"
	"mockgram/internal/adapters/web"
	"mockgram/internal/config"
	"mockgram/internal/mockdata"
	"mockgram/internal/usecases"
)

// --- screenshot ---

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture the profile page with headless Chrome",
	Long: `Serve the profile page on a loopback port and capture it with headless Chrome.

Examples:
  mockgram screenshot --out profile.png
  CHROME_PATH=/usr/bin/chromium mockgram screenshot --seed 7 --width 1280`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		width, _ := cmd.Flags().GetInt64("width")
		seed, _ := cmd.Flags().GetUint64("seed")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg.Seed, cfg.Seeded = seed, true

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		png, err := screenshot(ctx, cfg, width)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, png, 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", out)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(png))
		return nil
	},
}

func init() {
	screenshotCmd.Flags().String("out", "profile.png", "output PNG file")
	screenshotCmd.Flags().Int64("width", 1024, "viewport width in pixels")
	screenshotCmd.Flags().Uint64("seed", 1, "seed for the mock feed")
	rootCmd.AddCommand(screenshotCmd)
}

func screenshot(ctx context.Context, cfg config.Config, width int64) ([]byte, error) {
	profiles, err := config.LoadProfile(cfg.ProfilePath, 0)
	if err != nil {
		return nil, errors.Wrap(err, "loading profile")
	}
	defer profiles.Close()

	views := cache.NewViewStore(cfg.ViewTTL)
	defer views.Close()

	images := placeholder.NewRenderer(cfg.PlaceholderMaxSize, cfg.ViewTTL)
	defer images.Close()

	limiter := web.NewRateLimiter(0, cfg.ActionRateWindow)
	defer limiter.Close()

	mount := usecases.NewMountProfileUseCase(views, profiles, cfg.Generator(), uuid.NewString,
		cfg.PostCount, mockdata.HighlightImageURL)
	app := web.NewApp(web.NewHandlers(mount, usecases.NewInteractUseCase(views), images), limiter, "./static")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, errors.Wrap(err, "listening on loopback")
	}
	go func() { _ = app.Listener(ln) }()
	defer app.Shutdown()

	pool, err := browser.NewLocalPool()
	if err != nil {
		return nil, errors.Wrap(err, "starting chrome")
	}
	defer pool.Close()

	png, err := browser.Screenshot(ctx, pool, fmt.Sprintf("http://%s/", ln.Addr()), width)
	return png, errors.Wrap(err, "capturing page")
}
