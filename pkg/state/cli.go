package state

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/decker502/flixrail/pkg/config"
)

// Version 返回构建信息中的模块版本
func Version() string {
	ver := "devel"
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		ver = bi.Main.Version
	}
	return ver + " (" + runtime.Version() + ")"
}

// CommonFlags 所有程序共享的命令行参数
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
		&cli.StringFlag{Name: "content", Usage: "content `SOURCE`: base URL or directory with hero.json and contents.json"},
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "verbose logging and on-screen diagnostics"},
	}
}

// Initialize prepares application context before command execution but
// after command line has been parsed
func Initialize(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	return initialize(ctx, cmd, false)
}

// InitializeTerminal 与 Initialize 相同，但不向控制台输出日志（终端界面占用屏幕），
// --debug 时把调试日志写入文件
func InitializeTerminal(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	return initialize(ctx, cmd, true)
}

func initialize(ctx context.Context, cmd *cli.Command, terminal bool) (context.Context, error) {
	var err error

	env := EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.IsSet("content") {
		env.Cfg.Content.Source = cmd.String("content")
	}
	if cmd.Bool("debug") {
		env.Debug = true
		env.Cfg.Logging.ConsoleLogger.Level = config.LogLevelDebug
		if terminal {
			env.Cfg.Logging.FileLogger.Level = config.LogLevelDebug
		}
	}
	if terminal {
		env.Cfg.Logging.ConsoleLogger.Level = config.LogLevelNone
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", Version()))
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

// Destroy 程序结束时同步并关闭日志
func Destroy(ctx context.Context, cmd *cli.Command) error {
	env := EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	env.RestoreStdLog()
	return nil
}

// ExitErrHandler is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func ExitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		// 控制台日志关闭时错误仍需直接输出到 stderr
		env.errWasHandled = env.Cfg != nil && env.Cfg.Logging.ConsoleLogger.Level != config.LogLevelNone
	}
}

// UsageErrorHandler 错误由 ExitErrHandler 或 main 直接输出
func UsageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

// DumpConfigCommand 输出默认或实际生效的配置
func DumpConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "dumpconfig",
		Usage: "Dumps either default or actual configuration (YAML)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
		},
		OnUsageError: UsageErrorHandler,
		Action:       outputConfiguration,
		ArgsUsage:    "DESTINATION",
	}
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := EnvFromContext(ctx)
	log := env.Logger()
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err  error
		data []byte
		kind string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		kind = "default"
		data, err = config.Prepare()
	} else {
		kind = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	log.Info("Outputing configuration", zap.String("state", kind), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
