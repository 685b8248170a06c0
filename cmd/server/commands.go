package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"

	"mockgram/internal/adapters/cache"
	"mockgram/internal/config"
	"mockgram/internal/domain"
	"mockgram/internal/mockdata"
	"mockgram/internal/usecases"
	"mockgram/templates/pages"
)

// --- render ---

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Mount one view and write the profile page HTML to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := mountFromFlags(cmd)
		if err != nil {
			return err
		}
		return renderPage(cmd.Context(), cmd.OutOrStdout(), snapshot)
	},
}

// --- dump ---

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Mount one view and print its state",
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := mountFromFlags(cmd)
		if err != nil {
			return err
		}
		opts := dumpOptions()
		_, err = fmt.Fprintln(cmd.OutOrStdout(), opts.Sdump(snapshot))
		return err
	},
}

func init() {
	for _, cmd := range []*cobra.Command{renderCmd, dumpCmd} {
		cmd.Flags().Uint64("seed", 1, "seed for the mock feed")
		cmd.Flags().String("profile", "", "profile YAML file (built-in profile when empty)")
	}
}

func dumpOptions() litter.Options {
	return litter.Options{
		HidePrivateFields: true,
		Separator:         " ",
	}
}

// mountFromFlags mounts a single throwaway view with a fixed id.
func mountFromFlags(cmd *cobra.Command) (domain.Snapshot, error) {
	seed, _ := cmd.Flags().GetUint64("seed")
	profilePath, _ := cmd.Flags().GetString("profile")

	profiles, err := config.LoadProfile(profilePath, 0)
	if err != nil {
		return domain.Snapshot{}, errors.Wrap(err, "loading profile")
	}
	defer profiles.Close()

	views := cache.NewViewStore(time.Minute)
	defer views.Close()

	mount := usecases.NewMountProfileUseCase(views, profiles, mockdata.NewSeededGenerator(seed),
		func() string { return "preview" }, mockdata.DefaultPostCount, mockdata.HighlightImageURL)

	return mount.Execute(cmd.Context()), nil
}

func renderPage(ctx context.Context, w io.Writer, snapshot domain.Snapshot) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return pages.Profile(snapshot).Render(ctx, w)
}
