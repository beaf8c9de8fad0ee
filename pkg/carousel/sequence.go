package carousel

// MaterializedCard 回收序列中逻辑位置 Position 处的一个克隆卡片
type MaterializedCard[T any] struct {
	Position      int     // 在回收序列中的逻辑位置
	OriginalIndex int     // Position mod cardCount
	Width         float64 // 当前应用的宽度
	Card          T       // 原始卡片的副本
}

// Sequence 只追加、单调增长的回收卡片序列
//
// 序列按 originals 的模式循环克隆，位置编号从不重置：
// 第 p 张卡片的 OriginalIndex 始终为 p mod len(originals)。
type Sequence[T any] struct {
	originals []T
	cards     []MaterializedCard[T]
	width     float64
}

// NewSequence 创建序列并预先物化 seed 张卡片
// originals 不能为空
func NewSequence[T any](originals []T, seed int) *Sequence[T] {
	s := &Sequence[T]{originals: originals}
	s.Grow(seed)
	return s
}

// Len 已物化卡片数
func (s *Sequence[T]) Len() int {
	return len(s.cards)
}

// CardCount 原始卡片数
func (s *Sequence[T]) CardCount() int {
	return len(s.originals)
}

// Grow 在尾部追加 n 张卡片，编号延续当前长度
func (s *Sequence[T]) Grow(n int) {
	if n <= 0 || len(s.originals) == 0 {
		return
	}
	count := len(s.originals)
	start := len(s.cards)
	s.cards = append(s.cards, make([]MaterializedCard[T], n)...)
	for i := 0; i < n; i++ {
		p := start + i
		idx := p % count
		s.cards[p] = MaterializedCard[T]{
			Position:      p,
			OriginalIndex: idx,
			Width:         s.width,
			Card:          s.originals[idx],
		}
	}
}

// EnsureCapacity 以 batch 为单位扩容，直到 Len() >= end
// 返回追加的卡片数
func (s *Sequence[T]) EnsureCapacity(end, batch int) int {
	if batch <= 0 {
		batch = len(s.originals)
	}
	added := 0
	for len(s.cards) < end {
		s.Grow(batch)
		added += batch
	}
	return added
}

// At 返回位置 p 处的卡片
func (s *Sequence[T]) At(p int) (MaterializedCard[T], bool) {
	if p < 0 || p >= len(s.cards) {
		var zero MaterializedCard[T]
		return zero, false
	}
	return s.cards[p], true
}

// Range 返回 [from, to) 内已物化的卡片（越界部分被裁剪）
func (s *Sequence[T]) Range(from, to int) []MaterializedCard[T] {
	if from < 0 {
		from = 0
	}
	if to > len(s.cards) {
		to = len(s.cards)
	}
	if from >= to {
		return nil
	}
	out := make([]MaterializedCard[T], to-from)
	copy(out, s.cards[from:to])
	return out
}

// SetWidth 为所有已物化卡片以及之后追加的卡片设置宽度
func (s *Sequence[T]) SetWidth(w float64) {
	s.width = w
	for i := range s.cards {
		s.cards[i].Width = w
	}
}
