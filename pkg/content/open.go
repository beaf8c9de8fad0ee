package content

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// Open 按引用选择内容源
//
// 参数：
//   - ref: http(s) 基地址、本地目录，或空字符串（使用 builtin）
//   - builtin: 内置内容，ref 为空时使用
//   - timeout: HTTP 请求超时，0 表示 DefaultTimeout
//   - log: 日志记录器，可为 nil
func Open(ref string, builtin fs.FS, timeout time.Duration, log *zap.Logger) (Source, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	switch {
	case ref == "":
		if builtin == nil {
			return nil, fmt.Errorf("no content source configured")
		}
		log.Debug("Using built-in content")
		return NewFSSource(builtin, ".", log), nil

	case isRemote(ref):
		log.Debug("Using remote content", zap.String("base", ref))
		return NewHTTPSource(ref,
			WithHTTPClient(&http.Client{Timeout: timeout}),
			WithHTTPLogger(log))

	default:
		fi, err := os.Stat(ref)
		if err != nil {
			return nil, fmt.Errorf("unable to access content directory: %w", err)
		}
		if !fi.IsDir() {
			return nil, fmt.Errorf("content source %q is not a directory", ref)
		}
		log.Debug("Using local content", zap.String("dir", ref))
		src := NewFSSource(os.DirFS(ref), ".", log)
		src.client.Timeout = timeout
		return src, nil
	}
}
