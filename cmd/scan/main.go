// Command scan adds directories to the library index without starting
// the interface, printing what was found.
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/config"
	"github.com/llehouerou/cadence/internal/library"
	"github.com/llehouerou/cadence/internal/logger"
	"github.com/llehouerou/cadence/internal/state"
)

var (
	cfgFile string
	libFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:          "scan PATH...",
	Short:        "Scan audio files into the cadence library",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return scan(cmd, args)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file")
	rootCmd.Flags().StringVar(&libFile, "lib", "", "library database (default: from config)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log skipped files")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func scan(cmd *cobra.Command, paths []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	if libFile != "" {
		cfg.LibraryDB = libFile
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	if _, err := logger.Init(logger.Config{Output: "stderr", Level: level}); err != nil {
		return err
	}

	store, err := state.Open(cfg.LibraryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	tracks, err := store.LoadLibrary()
	if err != nil {
		return err
	}
	lib := library.New(tracks...)
	before := lib.Len()

	out := cmd.OutOrStdout()
	for _, p := range paths {
		added, err := lib.AddPath(p)
		if err != nil {
			zlog.Error().Err(err).Str("path", p).Msg("scan: failed")
			continue
		}
		fmt.Fprintf(out, "%s: %s new tracks\n", p, humanize.Comma(int64(added)))
	}

	if lib.Len() == before {
		fmt.Fprintln(out, "library unchanged")
		return nil
	}
	if err := store.SaveLibrary(lib.Tracks()); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s tracks by %s artists in %s\n",
		humanize.Comma(int64(lib.Len())),
		humanize.Comma(int64(len(lib.Artists())-1)),
		cfg.LibraryDB)
	return nil
}
