// Package data 内置的示例内容
//
// content/ 目录下的 hero.json 与 contents.json 在没有配置内容源时使用。
package data

import "embed"

//go:embed content
var FS embed.FS
