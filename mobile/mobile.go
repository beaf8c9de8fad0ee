//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。手动构建：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.flixrail -o build/android/flixrail.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Flixrail.xcframework -v ./mobile
package mobile

import (
	"context"
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/flixrail/data"
	"github.com/decker502/flixrail/pkg/app"
	"github.com/decker502/flixrail/pkg/config"
	"github.com/decker502/flixrail/pkg/embedded"
)

func init() {
	// 初始化内置内容
	embedded.Init(data.FS)

	// 使用默认配置
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	logger, err := cfg.Logging.Prepare()
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}

	gameApp, err := app.NewApp(context.Background(), cfg, logger, app.Options{})
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
