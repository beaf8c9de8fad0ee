// Package scenes 实现桌面端的加载、首页和错误场景
package scenes

import (
	"context"

	"go.uber.org/zap"

	"github.com/decker502/flixrail/pkg/config"
	"github.com/decker502/flixrail/pkg/content"
	"github.com/decker502/flixrail/pkg/likes"
	"github.com/decker502/flixrail/pkg/ui"
)

// Env 场景之间共享的依赖
//
// 由 app 包创建一次，所有场景持有同一个实例。
type Env struct {
	Ctx       context.Context
	Config    *config.Config
	Log       *zap.Logger
	Scenes    *ui.SceneManager
	Resources *ui.ResourceManager
	Settings  *ui.SettingsManager
	Content   *content.Cached
	Likes     *likes.Store
	// Debug 绘制调试信息（FPS、轨道状态）
	Debug bool
}

// logger 返回命名日志记录器，Log 为 nil 时不输出
func (env *Env) logger(name string) *zap.Logger {
	if env.Log == nil {
		return zap.NewNop()
	}
	return env.Log.Named(name)
}

// scale 当前 UI 缩放系数
func (env *Env) scale() float64 {
	if env.Settings == nil {
		return 1
	}
	if s := env.Settings.GetSettings().UIScale; s > 0 {
		return s
	}
	return 1
}

// reducedMotion 用户是否要求减少动态效果
func (env *Env) reducedMotion() bool {
	return env.Settings != nil && env.Settings.GetSettings().ReducedMotion
}

// reload 清空缓存与点赞并回到加载场景
func (env *Env) reload() {
	env.Content.Invalidate()
	if env.Likes != nil {
		env.Likes.Reset()
	}
	env.Resources.ForgetFailed()
	env.Scenes.SwitchTo(NewLoadingScene(env))
}
