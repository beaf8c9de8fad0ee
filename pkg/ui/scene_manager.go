package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// SceneManager controls which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	log          *zap.Logger
	currentScene Scene
	width        int
	height       int
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager(log *zap.Logger) *SceneManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &SceneManager{log: log}
}

// SwitchTo changes the active scene to the provided scene.
//
// 旧场景实现 Leaver 时先调用 Leave；新场景实现 Resizable 且已知窗口尺寸时
// 立即收到一次 Resize。
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	if l, ok := sm.currentScene.(Leaver); ok {
		l.Leave()
	}
	sm.currentScene = scene
	if r, ok := scene.(Resizable); ok && sm.width > 0 && sm.height > 0 {
		r.Resize(sm.width, sm.height)
	}
	sm.log.Debug("Scene switched", zap.String("scene", sceneName(scene)))
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Resize 记录窗口逻辑尺寸并转发给当前场景
func (sm *SceneManager) Resize(width, height int) {
	if width == sm.width && height == sm.height {
		return
	}
	sm.width, sm.height = width, height
	if r, ok := sm.currentScene.(Resizable); ok {
		r.Resize(width, height)
	}
}

// Size 最近一次记录的窗口逻辑尺寸
func (sm *SceneManager) Size() (width, height int) {
	return sm.width, sm.height
}

// Close 退出前让当前场景释放资源
func (sm *SceneManager) Close() {
	if l, ok := sm.currentScene.(Leaver); ok {
		l.Leave()
	}
	sm.currentScene = nil
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

func sceneName(s Scene) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "anonymous"
}
