package state

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
)

func runCommand(t *testing.T, args ...string) *LocalEnv {
	t.Helper()
	ctx := ContextWithEnv(context.Background())
	var seen *LocalEnv
	cmd := &cli.Command{
		Name:   "test",
		Flags:  CommonFlags(),
		Before: Initialize,
		After:  Destroy,
		Action: func(ctx context.Context, _ *cli.Command) error {
			seen = EnvFromContext(ctx)
			return nil
		},
		Commands: []*cli.Command{DumpConfigCommand()},
	}
	if err := cmd.Run(ctx, append([]string{"test"}, args...)); err != nil {
		t.Fatalf("Run(%v) error = %v", args, err)
	}
	return seen
}

func TestInitialize(t *testing.T) {
	t.Run("默认配置", func(t *testing.T) {
		env := runCommand(t)
		if env == nil || env.Cfg == nil || env.Log == nil {
			t.Fatal("Initialize 之后配置与日志期望已就绪")
		}
		if env.Debug {
			t.Error("未指定 --debug 时 Debug 期望为 false")
		}
		if env.Cfg.Content.Source != "" {
			t.Errorf("Content.Source = %q, 期望为空", env.Cfg.Content.Source)
		}
	})

	t.Run("命令行覆盖", func(t *testing.T) {
		env := runCommand(t, "--content", "https://example.com/feed", "--debug")
		if env.Cfg.Content.Source != "https://example.com/feed" {
			t.Errorf("Content.Source = %q, 期望命令行的值", env.Cfg.Content.Source)
		}
		if !env.Debug || env.Cfg.Logging.ConsoleLogger.Level != "debug" {
			t.Error("--debug 期望打开调试日志")
		}
	})

	t.Run("配置文件", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), "flixrail.yaml")
		if err := os.WriteFile(name, []byte("window:\n  title: Custom\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		env := runCommand(t, "--config", name)
		if env.Cfg.Window.Title != "Custom" {
			t.Errorf("Window.Title = %q, 期望 \"Custom\"", env.Cfg.Window.Title)
		}
	})
}

func TestDumpConfig(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dump.yaml")
	runCommand(t, "dumpconfig", out)

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("读取输出失败: %v", err)
	}
	if !strings.Contains(string(data), "carousel:") {
		t.Errorf("输出期望包含 carousel 配置, 实际:\n%s", data)
	}
}

func TestInitializeTerminal(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "tui.log")
	name := filepath.Join(t.TempDir(), "flixrail.yaml")
	if err := os.WriteFile(name, []byte("logging:\n  file:\n    level: none\n    destination: "+dest+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := ContextWithEnv(context.Background())
	var seen *LocalEnv
	cmd := &cli.Command{
		Name:   "tui",
		Flags:  CommonFlags(),
		Before: InitializeTerminal,
		After:  Destroy,
		Action: func(ctx context.Context, _ *cli.Command) error {
			seen = EnvFromContext(ctx)
			seen.Log.Debug("terminal debug line")
			return nil
		},
	}
	if err := cmd.Run(ctx, []string{"tui", "--config", name, "--debug"}); err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if seen.Cfg.Logging.ConsoleLogger.Level != "none" {
		t.Errorf("控制台日志级别 = %q, 期望 none", seen.Cfg.Logging.ConsoleLogger.Level)
	}
	if seen.Cfg.Logging.FileLogger.Level != "debug" {
		t.Errorf("文件日志级别 = %q, 期望 debug", seen.Cfg.Logging.FileLogger.Level)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	if !strings.Contains(string(data), "terminal debug line") {
		t.Errorf("日志文件期望包含调试输出, 实际:\n%s", data)
	}
}
