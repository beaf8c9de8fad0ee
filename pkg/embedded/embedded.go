// Package embedded 提供内置内容的统一访问接口
//
// 内置文件由 data 包嵌入，各个二进制在启动时通过 Init() 注入，
// 测试可以注入 fstest.MapFS 或 os.DirFS。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ContentDir 内置内容所在目录
const ContentDir = "content"

var (
	dataFS      fs.FS
	initialized bool
)

var errNotInitialized = errors.New("embedded package not initialized, call Init() first")

// Init 设置内置文件系统
// 必须在 main() 开始时、任何内容加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径并检查前缀
func normalize(path string) (string, error) {
	if !initialized {
		return "", errNotInitialized
	}

	// 标准化路径分隔符为正斜杠（embed.FS 使用正斜杠）
	path = filepath.ToSlash(path)

	// 移除可能的 "./" 前缀
	path = strings.TrimPrefix(path, "./")

	if path != ContentDir && !strings.HasPrefix(path, ContentDir+"/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with '%s/')", path, ContentDir)
	}
	return path, nil
}

// Open 打开内置文件，路径必须以 "content/" 开头
func Open(path string) (fs.File, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(path)
}

// ReadFile 读取内置文件内容，路径必须以 "content/" 开头
func ReadFile(path string) ([]byte, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, path)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配内置文件
func Glob(pattern string) ([]string, error) {
	pattern, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, pattern)
}

// Content 返回以内容目录为根的文件系统，供 content.FSSource 使用
func Content() (fs.FS, error) {
	dir, err := normalize(ContentDir)
	if err != nil {
		return nil, err
	}
	return fs.Sub(dataFS, dir)
}
