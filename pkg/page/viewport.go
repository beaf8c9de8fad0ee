package page

// Viewport 页面级的视口尺寸广播器
//
// 每个存活的引擎通过各自的宿主独立订阅；尺寸未变化时不广播。
// 不是线程安全的，与引擎在同一事件循环上使用。
type Viewport struct {
	width, height float64
	nextID        int
	order         []int
	subs          map[int]func()
}

// NewViewport 创建视口
func NewViewport(width, height float64) *Viewport {
	return &Viewport{
		width:  width,
		height: height,
		subs:   make(map[int]func()),
	}
}

// Size 当前尺寸
func (v *Viewport) Size() (width, height float64) {
	return v.width, v.height
}

// SetSize 更新尺寸并通知所有订阅者
//
// 返回尺寸是否发生了变化。
func (v *Viewport) SetSize(width, height float64) bool {
	if width == v.width && height == v.height {
		return false
	}
	v.width, v.height = width, height

	// 回调中可能取消订阅，先拷贝
	ids := append([]int(nil), v.order...)
	for _, id := range ids {
		if fn, ok := v.subs[id]; ok {
			fn()
		}
	}
	return true
}

// Subscribe 订阅尺寸变化，返回取消订阅函数（可重复调用）
func (v *Viewport) Subscribe(fn func()) (unsubscribe func()) {
	v.nextID++
	id := v.nextID
	v.subs[id] = fn
	v.order = append(v.order, id)
	return func() {
		if _, ok := v.subs[id]; !ok {
			return
		}
		delete(v.subs, id)
		for i, o := range v.order {
			if o == id {
				v.order = append(v.order[:i], v.order[i+1:]...)
				break
			}
		}
	}
}

// Subscribers 当前订阅者数量
func (v *Viewport) Subscribers() int {
	return len(v.subs)
}
