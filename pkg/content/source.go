package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Source 内容源
//
// 所有方法在失败时返回 *FetchError。
type Source interface {
	// Hero 获取 hero.json
	Hero(ctx context.Context) (*Hero, error)
	// Sections 获取 contents.json 中的轨道列表
	Sections(ctx context.Context) ([]Section, error)
	// Asset 获取卡片/主视觉引用的图片等资源
	Asset(ctx context.Context, ref string) ([]byte, error)
}

// maxDocumentSize 单个文档/资源的最大字节数
const maxDocumentSize = 32 << 20

// DefaultTimeout HTTP 请求默认超时
const DefaultTimeout = 10 * time.Second

// HTTPSource 基于 HTTP 的双端点 JSON 客户端
type HTTPSource struct {
	base   *url.URL
	client *http.Client
	log    *zap.Logger
}

// HTTPOption HTTPSource 构造选项
type HTTPOption func(*HTTPSource)

// WithHTTPClient 使用自定义 http.Client
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if c != nil {
			s.client = c
		}
	}
}

// WithHTTPLogger 设置日志记录器
func WithHTTPLogger(log *zap.Logger) HTTPOption {
	return func(s *HTTPSource) {
		if log != nil {
			s.log = log
		}
	}
}

// NewHTTPSource 创建 HTTP 内容源，baseURL 为两个 JSON 文档所在目录
func NewHTTPSource(baseURL string, opts ...HTTPOption) (*HTTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid content base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid content base URL %q: scheme must be http or https", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	s := &HTTPSource{
		base:   u,
		client: &http.Client{Timeout: DefaultTimeout},
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Hero 实现 Source
func (s *HTTPSource) Hero(ctx context.Context) (*Hero, error) {
	target := s.resolve(HeroEndpoint)
	data, err := httpGet(ctx, s.client, target, s.log)
	if err != nil {
		return nil, err
	}
	h, err := decodeHero(data)
	if err != nil {
		return nil, &FetchError{URL: target, Err: fmt.Errorf("malformed hero document: %w", err)}
	}
	return h, nil
}

// Sections 实现 Source
func (s *HTTPSource) Sections(ctx context.Context) ([]Section, error) {
	target := s.resolve(ContentsEndpoint)
	data, err := httpGet(ctx, s.client, target, s.log)
	if err != nil {
		return nil, err
	}
	sections, err := decodeSections(data)
	if err != nil {
		return nil, &FetchError{URL: target, Err: fmt.Errorf("malformed contents document: %w", err)}
	}
	return sections, nil
}

// Asset 实现 Source，相对引用按 base 解析
func (s *HTTPSource) Asset(ctx context.Context, ref string) ([]byte, error) {
	return httpGet(ctx, s.client, s.resolve(ref), s.log)
}

// resolve 把相对引用解析为绝对 URL
func (s *HTTPSource) resolve(ref string) string {
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return s.base.ResolveReference(r).String()
}

// FSSource 从 fs.FS 读取同样的两个文档
type FSSource struct {
	fsys   fs.FS
	dir    string
	client *http.Client // 用于 http(s) 绝对引用的资源
	log    *zap.Logger
}

// NewFSSource 创建文件系统内容源，dir 为文档所在目录（"." 表示根）
func NewFSSource(fsys fs.FS, dir string, log *zap.Logger) *FSSource {
	if log == nil {
		log = zap.NewNop()
	}
	if dir == "" {
		dir = "."
	}
	return &FSSource{
		fsys:   fsys,
		dir:    dir,
		client: &http.Client{Timeout: DefaultTimeout},
		log:    log,
	}
}

// Hero 实现 Source
func (s *FSSource) Hero(_ context.Context) (*Hero, error) {
	name := path.Join(s.dir, HeroEndpoint)
	data, err := s.read(name)
	if err != nil {
		return nil, err
	}
	h, err := decodeHero(data)
	if err != nil {
		return nil, &FetchError{URL: name, Err: fmt.Errorf("malformed hero document: %w", err)}
	}
	return h, nil
}

// Sections 实现 Source
func (s *FSSource) Sections(_ context.Context) ([]Section, error) {
	name := path.Join(s.dir, ContentsEndpoint)
	data, err := s.read(name)
	if err != nil {
		return nil, err
	}
	sections, err := decodeSections(data)
	if err != nil {
		return nil, &FetchError{URL: name, Err: fmt.Errorf("malformed contents document: %w", err)}
	}
	return sections, nil
}

// Asset 实现 Source：http(s) 引用走网络，其余按相对路径读取
func (s *FSSource) Asset(ctx context.Context, ref string) ([]byte, error) {
	if isRemote(ref) {
		return httpGet(ctx, s.client, ref, s.log)
	}
	return s.read(path.Join(s.dir, strings.TrimPrefix(ref, "/")))
}

func (s *FSSource) read(name string) ([]byte, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, &FetchError{URL: name, Err: err}
	}
	return data, nil
}

// isRemote 引用是否为 http(s) 绝对地址
func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// httpGet 执行 GET，非 2xx 视为失败
func httpGet(ctx context.Context, client *http.Client, target string, log *zap.Logger) ([]byte, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json, image/*;q=0.9, */*;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// 读取并丢弃响应体以复用连接
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &FetchError{URL: target, Status: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, &FetchError{URL: target, Status: resp.StatusCode, Err: err}
	}
	log.Debug("Fetched",
		zap.String("url", target),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)))
	return data, nil
}
