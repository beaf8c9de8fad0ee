package content

import "fmt"

// FetchError 获取内容失败（网络/HTTP 错误、非 2xx 状态、格式错误）
//
// 原始原因通过 Unwrap 保留。
type FetchError struct {
	URL    string // 请求地址或文件路径
	Status int    // HTTP 状态码，非 HTTP 失败时为 0
	Err    error  // 原始原因
}

func (e *FetchError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	default:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
