// contentcheck 检查首页内容（目录或 URL），发现问题时以非零状态退出
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/decker502/flixrail/data"
	"github.com/decker502/flixrail/pkg/content"
	"github.com/decker502/flixrail/pkg/embedded"
	"github.com/decker502/flixrail/pkg/state"
)

// check 加载并检查内容，把结果写入 w
//
// 返回:
//   - int: 发现的问题数
//   - error: 内容无法加载
func check(ctx context.Context, src content.Source, w io.Writer) (int, error) {
	home, err := content.LoadHome(ctx, src)
	if err != nil {
		return 0, fmt.Errorf("unable to load home page content: %w", err)
	}

	cards := 0
	for _, sec := range home.Sections {
		cards += len(sec.Contents)
	}
	fmt.Fprintf(w, "✅ 内容加载成功: %d 个分区, %d 张卡片\n", len(home.Sections), cards)

	problems := content.Validate(home)
	for _, p := range problems {
		fmt.Fprintf(w, "❌ %s\n", p)
	}
	if len(problems) == 0 {
		fmt.Fprintf(w, "✅ 没有发现问题\n")
	} else {
		fmt.Fprintf(w, "❌ 发现 %d 个问题\n", len(problems))
	}
	return len(problems), nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("contentcheck")

	ref := env.Cfg.Content.Source
	if cmd.Args().Present() {
		ref = cmd.Args().First()
	}

	embedded.Init(data.FS)
	builtin, err := embedded.Content()
	if err != nil {
		return fmt.Errorf("built-in content unavailable: %w", err)
	}
	src, err := content.Open(ref, builtin, env.Cfg.Content.Timeout, log.Named("content"))
	if err != nil {
		return fmt.Errorf("unable to open content source: %w", err)
	}

	if timeout := env.Cfg.Content.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.Debug("Checking content", zap.String("source", ref))
	n, err := check(ctx, src, cmd.Root().Writer)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%d content problems found", n)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	cmd := &cli.Command{
		Name:            "contentcheck",
		Usage:           "validate home page content from a directory or URL",
		ArgsUsage:       "[SOURCE]",
		Version:         state.Version(),
		HideHelpCommand: true,
		Before:          state.Initialize,
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
