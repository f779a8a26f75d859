package main

import (
	"context"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/app"
	"github.com/llehouerou/cadence/internal/command"
	"github.com/llehouerou/cadence/internal/config"
	"github.com/llehouerou/cadence/internal/dispatch"
	"github.com/llehouerou/cadence/internal/icons"
	"github.com/llehouerou/cadence/internal/keymap"
	"github.com/llehouerou/cadence/internal/library"
	"github.com/llehouerou/cadence/internal/logger"
	"github.com/llehouerou/cadence/internal/mpris"
	"github.com/llehouerou/cadence/internal/notify"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/state"
	"github.com/llehouerou/cadence/internal/stderr"
)

var (
	cfgFile  string
	addPaths []string
	libFile  string
)

var rootCmd = &cobra.Command{
	Use:   "cadence",
	Short: "Terminal music player",
	Long: `Cadence browses a local music library by artist and album,
keeps playlists as M3U8 files and plays them gaplessly.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/cadence/config.toml)")
	rootCmd.Flags().StringArrayVarP(&addPaths, "add", "a", nil, "scan a file or directory into the library on startup")
	rootCmd.Flags().StringVar(&libFile, "lib", "", "library database to use instead of the configured one")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	if libFile != "" {
		cfg.LibraryDB = libFile
	}

	logCloser, err := logger.Init(logger.Config{Output: "file", Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	// Decoder libraries write to fd 2, which would corrupt the screen.
	if err := stderr.Start(func(line string) {
		zlog.Warn().Str("line", line).Msg("stderr: captured output")
	}); err != nil {
		zlog.Warn().Err(err).Msg("stderr: capture unavailable")
	}
	defer stderr.Stop()

	icons.Init(cfg.NerdFontIcons)
	bindings, err := keymap.WithOverrides(keymap.Bindings, cfg.Keys)
	if err != nil {
		return errors.Wrap(err, "key bindings")
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
	zlog.Info().Int("tracks", lib.Len()).Str("db", cfg.LibraryDB).Msg("library: loaded")

	if err := os.MkdirAll(cfg.PlaylistDir, 0o755); err != nil {
		return errors.Wrap(err, "create playlist directory")
	}
	playlists, err := playlist.LoadDir(cfg.PlaylistDir)
	if err != nil {
		zlog.Warn().Err(err).Msg("playlist: initial load failed")
	}

	shared := playback.NewShared()
	engine, err := playback.New(shared, playback.Config{
		Device:  player.NewSpeaker(),
		Gapless: cfg.GaplessPlayback,
	})
	if err != nil {
		return err
	}

	commands := command.NewQueue()
	host := app.NewHost(lib, store, cfg.PlaylistDir)

	model := app.New(app.Options{
		State:     shared,
		Commands:  commands,
		Store:     store,
		Library:   lib,
		Playlists: playlists,
		Bindings:  bindings,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	host.Attach(program.Send)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var wg sync.WaitGroup

	loop := dispatch.New(engine, commands, dispatch.Options{
		Host:     host,
		Interval: cfg.TickInterval,
		Status:   host.Status,
	})
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			zlog.Error().Err(err).Msg("dispatch: loop stopped")
		}
	}()

	wg.Go(func() {
		if err := playlist.Watch(ctx, cfg.PlaylistDir, host.PlaylistsChanged); err != nil {
			zlog.Warn().Err(err).Msg("playlist: watch stopped")
		}
	})

	if adapter, err := mpris.New(shared, commands, engine.Subscribe()); err != nil {
		zlog.Warn().Err(err).Msg("mpris: unavailable")
	} else {
		defer adapter.Close()
	}

	if cfg.Notifications {
		notifier, err := notify.New()
		if err != nil {
			zlog.Warn().Err(err).Msg("notify: unavailable")
		} else {
			sub := engine.Subscribe()
			wg.Go(func() { notify.Follow(sub, notifier) })
		}
	}

	for _, p := range append(cfg.LibrarySources, addPaths...) {
		commands.Push(command.WithArg(command.AddPath, p))
	}

	_, runErr := program.Run()
	cancel()
	host.Wait()
	// The loop is the engine's only driver; Close must not overlap it.
	<-loopDone
	engine.Close()
	wg.Wait()

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return errors.Wrap(runErr, "run interface")
	}
	return nil
}
