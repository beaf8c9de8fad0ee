package page

import (
	"strconv"
	"strings"

	"github.com/decker502/flixrail/pkg/content"
	"github.com/decker502/flixrail/pkg/likes"
)

// CardView 卡片展示模型
type CardView struct {
	ID       string
	Title    string
	Image    string
	Category string
	Badge    string // "NEW" 或空
	Rank     string // 排行榜序号，非排行榜卡片为空
	Rating   string
	Meta     string // 年份 · 分级 · 类别
	Liked    bool
	Likes    int
}

// NewBadge 新内容角标
const NewBadge = "NEW"

// NewCardView 构造卡片展示模型
func NewCardView(c content.Card, like likes.Entry) CardView {
	v := CardView{
		ID:       string(c.ID),
		Title:    c.Title,
		Image:    c.Image,
		Category: c.Category,
		Rank:     c.RankLabel(),
		Rating:   string(c.Rating),
		Liked:    like.Liked,
		Likes:    like.Count,
	}
	if c.IsNew {
		v.Badge = NewBadge
	}

	var meta []string
	if c.Year > 0 {
		meta = append(meta, strconv.Itoa(c.Year))
	}
	if c.Rating != "" {
		meta = append(meta, string(c.Rating)+"+")
	}
	if c.Category != "" {
		meta = append(meta, c.Category)
	}
	v.Meta = strings.Join(meta, " · ")
	return v
}

// LikeLabel 点赞按钮文本
func (v CardView) LikeLabel() string {
	mark := "♡"
	if v.Liked {
		mark = "♥"
	}
	return mark + " " + strconv.Itoa(v.Likes)
}
