package page

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/decker502/flixrail/pkg/content"
)

// ReloadAction 错误横幅上唯一的操作
const ReloadAction = "Reload"

// BannerModel 整页可恢复错误的展示模型
//
// 只提供手动重新加载，不自动重试。
type BannerModel struct {
	Title   string
	Message string
	Details []string
	Action  string
}

// Banner 根据顶层初始化错误构造错误横幅
func Banner(err error) BannerModel {
	m := BannerModel{
		Title:  "Something went wrong",
		Action: ReloadAction,
	}
	if err == nil {
		m.Message = "The page could not be loaded."
		return m
	}

	errs := multierr.Errors(err)
	m.Message = "We could not load the home page content."
	if len(errs) == 1 && isUnavailable(err) {
		m.Message = "The content service is unavailable right now."
	}
	for _, e := range errs {
		m.Details = append(m.Details, describe(e))
	}
	return m
}

func isUnavailable(err error) bool {
	var fe *content.FetchError
	return errors.As(err, &fe) && fe.Status >= 500
}

func describe(err error) string {
	var fe *content.FetchError
	if errors.As(err, &fe) && fe.Status != 0 {
		return fmt.Sprintf("%s (HTTP %d)", fe.URL, fe.Status)
	}
	return err.Error()
}
