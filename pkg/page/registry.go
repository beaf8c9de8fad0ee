// Package page 负责首页的组装：为每个内容分区创建一条轨道、
// 维护轨道引擎的注册表、广播视口变化，并提供页头、卡片与错误横幅的展示模型。
package page

import (
	"fmt"
	"strconv"

	"github.com/gosimple/slug"

	"github.com/decker502/flixrail/pkg/carousel"
	"github.com/decker502/flixrail/pkg/content"
)

// Engine 首页轨道使用的引擎类型
type Engine = carousel.Engine[content.Card]

// RailID 计算轨道标识
//
// 优先使用分区 id；id 为空时使用标题的 slug；两者都为空时使用序号。
func RailID(section content.Section, index int) string {
	if section.ID != "" {
		return string(section.ID)
	}
	if s := slug.Make(section.Title); s != "" {
		return s
	}
	return "rail-" + strconv.Itoa(index)
}

// Registry 轨道引擎注册表，按轨道标识索引并保持注册顺序
//
// 引擎实例只由注册表持有，不挂在任何共享的外部对象上。
type Registry struct {
	order   []string
	engines map[string]*Engine
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]*Engine)}
}

// Register 注册引擎，标识已存在时返回错误
func (r *Registry) Register(id string, e *Engine) error {
	if e == nil {
		return fmt.Errorf("register rail %q: nil engine", id)
	}
	if _, ok := r.engines[id]; ok {
		return fmt.Errorf("register rail %q: already registered", id)
	}
	r.engines[id] = e
	r.order = append(r.order, id)
	return nil
}

// Get 按标识查找引擎
func (r *Registry) Get(id string) (*Engine, bool) {
	e, ok := r.engines[id]
	return e, ok
}

// Has 标识是否已注册
func (r *Registry) Has(id string) bool {
	_, ok := r.engines[id]
	return ok
}

// Remove 移除并销毁引擎
func (r *Registry) Remove(id string) bool {
	e, ok := r.engines[id]
	if !ok {
		return false
	}
	e.Destroy()
	delete(r.engines, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Each 按注册顺序遍历，fn 返回 false 时停止
func (r *Registry) Each(fn func(id string, e *Engine) bool) {
	for _, id := range r.order {
		if !fn(id, r.engines[id]) {
			return
		}
	}
}

// IDs 按注册顺序返回所有标识
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Len 已注册的引擎数
func (r *Registry) Len() int {
	return len(r.order)
}

// DestroyAll 销毁并移除所有引擎
func (r *Registry) DestroyAll() {
	for _, id := range r.order {
		r.engines[id].Destroy()
	}
	r.order = nil
	r.engines = make(map[string]*Engine)
}
