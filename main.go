package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ReactionTest/audio"
	"ReactionTest/config"
	"ReactionTest/i18n"
	"ReactionTest/logging"
	"ReactionTest/reaction"
	"ReactionTest/ui"
)

type options struct {
	configPath string
	lang       string
	logLevel   string
	mute       bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "reactiontest",
		Short: "Reaction Speed Test - click as soon as the panel turns green",
		Long: `Reaction Speed Test measures the time between a color change and your click.
It keeps your last 5 attempts, your best time for the session and rates
each result from "Lightning Fast" to "Keep Practicing".`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default: ./config.yaml or ~/.config/reactiontest/config.yaml)")
	flags.StringVar(&opts.lang, "lang", "", "UI language (en, pt, es, ru)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.mute, "mute", false, "disable the stimulus sound")
	return cmd
}

// loadConfig reads the config file and applies flags that were set explicitly.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Loader, error) {
	loader, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	overrides := []struct {
		flag  string
		key   string
		value any
	}{
		{"lang", "ui.language", opts.lang},
		{"log-level", "logging.level", opts.logLevel},
		{"mute", "audio.enabled", !opts.mute},
	}
	for _, o := range overrides {
		if !cmd.Flags().Changed(o.flag) {
			continue
		}
		if err := loader.Set(o.key, o.value); err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", o.flag, err)
		}
	}
	return loader, nil
}

func run(cmd *cobra.Command, opts *options) error {
	loader, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	cfg := loader.Config()

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	if f := loader.ConfigFile(); f != "" {
		log.Info("Configuration loaded", zap.String("file", f))
	}

	i18n.Init(cfg.UI.Language, log)

	fyneApp := app.New()
	fyneApp.SetIcon(theme.MediaFastForwardIcon())
	fyneApp.Settings().SetTheme(ui.NewCustomTheme())

	player := audio.NewPlayer(cfg.Audio, log)
	loader.Watch(log, func(c config.Config) {
		if err := player.Apply(c.Audio); err != nil {
			log.Warn("Audio cue not updated", zap.Error(err))
		}
	})

	a := NewAppManager(reaction.NewController(reaction.SystemClock), player, log)
	w, v := ui.CreateMainWindow(a, fyneApp, fyne.NewSize(cfg.UI.Width, cfg.UI.Height))
	a.mainWindow = w
	a.SetView(v)

	ctx, cancel := context.WithCancel(context.Background())
	w.SetOnClosed(func() {
		cancel()
		a.Shutdown()
	})

	go a.tick(ctx)

	w.ShowAndRun()
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
