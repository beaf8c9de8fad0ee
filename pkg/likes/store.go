// Package likes 提供卡片点赞的开关计数
//
// 计数只保存在内存中，重新加载后重新生成。
package likes

import (
	"math/rand/v2"
	"sync"
)

// 初始点赞数范围（闭区间）
const (
	MinInitial = 10
	MaxInitial = 500
)

// Entry 某张卡片的点赞状态
type Entry struct {
	Liked bool
	Count int
}

// Store 点赞存储，按卡片 id 索引
type Store struct {
	mu      sync.Mutex
	rnd     *rand.Rand
	entries map[string]Entry
}

// NewStore 创建点赞存储
//
// 参数:
//   - rnd: 初始计数的随机源，nil 时使用随机种子
func NewStore(rnd *rand.Rand) *Store {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Store{
		rnd:     rnd,
		entries: make(map[string]Entry),
	}
}

// Get 返回卡片的点赞状态，首次访问时生成初始计数
func (s *Store) Get(id string) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entry(id)
}

// Toggle 切换点赞状态
//
// 返回:
//   - liked: 切换后的状态
//   - count: 切换后的计数
func (s *Store) Toggle(id string) (liked bool, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entry(id)
	if e.Liked {
		e.Count--
	} else {
		e.Count++
	}
	e.Liked = !e.Liked
	s.entries[id] = e
	return e.Liked, e.Count
}

// Len 已生成状态的卡片数
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Reset 清空所有状态
func (s *Store) Reset() {
	s.mu.Lock()
	s.entries = make(map[string]Entry)
	s.mu.Unlock()
}

func (s *Store) entry(id string) Entry {
	e, ok := s.entries[id]
	if !ok {
		e = Entry{Count: MinInitial + s.rnd.IntN(MaxInitial-MinInitial+1)}
		s.entries[id] = e
	}
	return e
}
