package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
)

// frameInterval 终端刷新间隔
const frameInterval = 33 * time.Millisecond

// maxFrameStep 单帧推进的上限（进程被挂起后恢复时不一次跳过所有过渡）
const maxFrameStep = 250 * time.Millisecond

// Run 运行终端首页直到用户退出或 ctx 结束
//
// screen 必须已经 Init，由调用方负责 Fini。
func Run(ctx context.Context, screen tcell.Screen, deps Deps) error {
	w, h := screen.Size()
	deps.Post = screen.PostEvent
	m := NewModel(deps, w, h)
	defer m.Close()
	m.Load()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	show := func() {
		m.Draw(screen)
		screen.Show()
		m.Shown()
	}
	show()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				screen.Sync()
			}
			if !m.HandleEvent(ev) {
				return nil
			}

		case now := <-ticker.C:
			m.Tick(min(now.Sub(last), maxFrameStep))
			last = now
			show()
		}
	}
}
