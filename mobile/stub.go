//go:build !mobile

// Package mobile 是 gomobile 绑定入口，只有 -tags mobile 时才包含实际代码
package mobile

// Dummy 普通构建时让包仍可被引用
func Dummy() {}
