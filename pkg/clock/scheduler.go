// Package clock 提供帧驱动的延时调度器
//
// 所有回调都在调用 Advance 的 goroutine 上执行，因此宿主（ebiten 的 Update、
// tcell 的事件循环）可以保持单线程语义，不需要额外加锁。
package clock

import (
	"sort"
	"time"
)

// timer 一个待触发的延时任务
type timer struct {
	id       uint64
	deadline time.Duration // 相对调度器启动的绝对时间
	fn       func()
	canceled bool
}

// Scheduler 帧驱动调度器
//
// 调度器自身不启动任何 goroutine，时间只在 Advance 被调用时前进。
// 这使得测试可以精确控制时间流逝。
//
// Thread Safety Note:
// Scheduler is NOT thread-safe. It must be owned by one event loop.
type Scheduler struct {
	now    time.Duration
	nextID uint64
	timers []*timer
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now 返回调度器内部时间（自创建以来 Advance 的累计值）
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After 在 d 之后执行 fn，返回取消函数
//
// d <= 0 时 fn 会在下一次 Advance 中执行（而不是立即执行）。
// 取消函数可以重复调用。
func (s *Scheduler) After(d time.Duration, fn func()) (cancel func()) {
	if d < 0 {
		d = 0
	}
	s.nextID++
	t := &timer{id: s.nextID, deadline: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.canceled = true }
}

// Pending 返回尚未触发且未取消的任务数
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.canceled {
			n++
		}
	}
	return n
}

// Advance 推进时间并执行所有到期任务
//
// 到期任务按截止时间（相同时按注册顺序）执行。回调中注册的新任务
// 如果已经到期，也会在本次 Advance 中执行。
func (s *Scheduler) Advance(dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}

	for {
		due := s.collectDue()
		if len(due) == 0 {
			return
		}
		for _, t := range due {
			if t.canceled {
				continue
			}
			t.canceled = true
			t.fn()
		}
	}
}

// collectDue 取出所有到期任务，剩余任务留在队列中
func (s *Scheduler) collectDue() []*timer {
	var due []*timer
	kept := s.timers[:0]
	for _, t := range s.timers {
		switch {
		case t.canceled:
			// 丢弃
		case t.deadline <= s.now:
			due = append(due, t)
		default:
			kept = append(kept, t)
		}
	}
	// 清理尾部引用，避免持有已执行的闭包
	for i := len(kept); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = kept

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].deadline != due[j].deadline {
			return due[i].deadline < due[j].deadline
		}
		return due[i].id < due[j].id
	})
	return due
}
