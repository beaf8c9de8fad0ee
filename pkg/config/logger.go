package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// 日志级别取值
const (
	LogLevelNone   = "none"
	LogLevelNormal = "normal"
	LogLevelDebug  = "debug"
)

// LoggerConfig 单个日志输出的配置
type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
}

// minLevel 配置级别对应的最低 zap 级别，none 返回 false
func (c LoggerConfig) minLevel() (zapcore.Level, bool) {
	switch c.Level {
	case LogLevelDebug:
		return zapcore.DebugLevel, true
	case LogLevelNormal:
		return zapcore.InfoLevel, true
	}
	return 0, false
}

// LoggingConfig 控制台与文件两路日志
type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// EnableColorOutput 输出流是否为终端
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}

// Prepare 按配置构建 zap 日志记录器
//
// 控制台输出拆分到 stdout（低于 error）与 stderr（error 及以上），
// 文件输出可选；文件无法打开时改写到临时目录并记录一条警告。
func (conf *LoggingConfig) Prepare() (*zap.Logger, error) {
	cores := conf.consoleCores()

	fileCore, redirected, err := conf.fileCore()
	if err != nil {
		return nil, err
	}
	cores = append(cores, fileCore)

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	if redirected != "" {
		log.Warn("Log file was redirected to new location", zap.String("location", redirected))
	}
	return log.Named(AppName), nil
}

func (conf *LoggingConfig) consoleCores() []zapcore.Core {
	lowest, ok := conf.ConsoleLogger.minLevel()
	if !ok {
		return nil
	}
	stdout := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig(os.Stdout)),
		zapcore.Lock(os.Stdout),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= lowest && lvl < zapcore.ErrorLevel
		}))
	stderr := zapcore.NewCore(
		briefErrors{zapcore.NewConsoleEncoder(consoleEncoderConfig(os.Stderr))},
		zapcore.Lock(os.Stderr),
		zapcore.ErrorLevel)
	return []zapcore.Core{stdout, stderr}
}

// fileCore 文件日志，返回被改写后的路径（未改写时为空）
func (conf *LoggingConfig) fileCore() (zapcore.Core, string, error) {
	lowest, ok := conf.FileLogger.minLevel()
	if !ok {
		return zapcore.NewNopCore(), "", nil
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())

	f, err := openLogFile(conf.FileLogger.Destination, conf.FileLogger.Mode)
	if err == nil {
		return zapcore.NewCore(enc, zapcore.Lock(f), lowest), "", nil
	}
	f, tmpErr := os.CreateTemp("", AppName+".*.log")
	if tmpErr != nil {
		return nil, "", fmt.Errorf("unable to access file log destination (%s): %w", conf.FileLogger.Destination, errors.Join(err, tmpErr))
	}
	return zapcore.NewCore(enc, zapcore.Lock(f), lowest), f.Name(), nil
}

func consoleEncoderConfig(stream *os.File) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	}
	return ec
}

func openLogFile(name, mode string) (*os.File, error) {
	if name == "" {
		return nil, errors.New("empty log destination")
	}
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return nil, err
	}
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if mode == "append" {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	return os.OpenFile(name, flags, 0o644)
}

// briefErrors 控制台上的错误字段只输出消息，不展开 %+v 形式的详细信息
type briefErrors struct {
	zapcore.Encoder
}

func (b briefErrors) Clone() zapcore.Encoder {
	return briefErrors{b.Encoder.Clone()}
}

func (b briefErrors) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	brief := make([]zapcore.Field, len(fields))
	for i, f := range fields {
		if err, ok := f.Interface.(error); ok && f.Type == zapcore.ErrorType {
			f.Interface = errors.New(err.Error())
		}
		brief[i] = f
	}
	return b.Encoder.EncodeEntry(ent, brief)
}
