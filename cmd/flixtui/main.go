// flixtui 在终端中浏览同一份首页内容
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/decker502/flixrail/data"
	"github.com/decker502/flixrail/internal/tui"
	"github.com/decker502/flixrail/pkg/content"
	"github.com/decker502/flixrail/pkg/embedded"
	"github.com/decker502/flixrail/pkg/likes"
	"github.com/decker502/flixrail/pkg/state"
)

func run(ctx context.Context, _ *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("flixtui")

	embedded.Init(data.FS)
	builtin, err := embedded.Content()
	if err != nil {
		return fmt.Errorf("built-in content unavailable: %w", err)
	}
	src, err := content.Open(env.Cfg.Content.Source, builtin, env.Cfg.Content.Timeout, log.Named("content"))
	if err != nil {
		return fmt.Errorf("unable to open content source: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("unable to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("unable to initialize terminal screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.SetTitle("Flixrail")

	log.Debug("Terminal started", zap.String("content", env.Cfg.Content.Source))
	return tui.Run(ctx, screen, tui.Deps{
		Ctx:     ctx,
		Config:  env.Cfg,
		Log:     log,
		Content: content.NewCached(src, log.Named("content")),
		Likes:   likes.NewStore(nil),
	})
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	cmd := &cli.Command{
		Name:            "flixtui",
		Usage:           "browse the streaming home page in a terminal",
		Version:         state.Version(),
		HideHelpCommand: true,
		Before:          state.InitializeTerminal,
		After:           state.Destroy,
		OnUsageError:    state.UsageErrorHandler,
		ExitErrHandler:  state.ExitErrHandler,
		Flags:           state.CommonFlags(),
		Action:          run,
		Commands:        []*cli.Command{state.DumpConfigCommand()},
	}

	var err error
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
