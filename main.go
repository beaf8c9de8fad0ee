package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/decker502/flixrail/data"
	"github.com/decker502/flixrail/pkg/app"
	"github.com/decker502/flixrail/pkg/config"
	"github.com/decker502/flixrail/pkg/embedded"
	"github.com/decker502/flixrail/pkg/state"
)

func run(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	embedded.Init(data.FS)

	game, err := app.NewApp(ctx, env.Cfg, env.Log, app.Options{
		Debug:      env.Debug,
		Fullscreen: cmd.Bool("fullscreen"),
	})
	if err != nil {
		return err
	}
	defer game.Close()

	game.ConfigureWindow()
	env.Log.Info("Starting", zap.String("content", env.Cfg.Content.Source))

	// Start the game loop
	// This will call Update() and Draw() repeatedly until the window is closed
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("game loop failed: %w", err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	flags := append(state.CommonFlags(),
		&cli.BoolFlag{Name: "fullscreen", Aliases: []string{"f"}, Usage: "start in fullscreen mode (F11 toggles)"},
	)

	cmd := &cli.Command{
		Name:            config.AppName,
		Usage:           "streaming home page with infinite carousels",
		Version:         state.Version(),
		HideHelpCommand: true,
		Before:          state.Initialize,
		After:           state.Destroy,
		OnUsageError:    state.UsageErrorHandler,
		ExitErrHandler:  state.ExitErrHandler,
		Flags:           flags,
		Action:          run,
		Commands:        []*cli.Command{state.DumpConfigCommand()},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			if !state.EnvFromContext(ctx).ErrorWasHandled() {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = cmd.Run(ctx, os.Args)
}
