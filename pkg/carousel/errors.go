package carousel

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig 配置非法（visible/step 非正数、负的时长或间距等）
var ErrInvalidConfig = errors.New("carousel: invalid configuration")

// ErrNilHost 未提供宿主能力
var ErrNilHost = errors.New("carousel: nil host")

// EmptyInputError 使用空卡片列表构造引擎
//
// 对于单个轨道是致命错误：调用方记录日志并跳过该轨道，不影响其他轨道。
type EmptyInputError struct {
	Label string // 轨道标签（可能为空）
}

func (e *EmptyInputError) Error() string {
	if e.Label == "" {
		return "carousel: no cards to display"
	}
	return fmt.Sprintf("carousel %q: no cards to display", e.Label)
}
