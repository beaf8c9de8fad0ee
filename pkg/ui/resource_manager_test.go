package ui

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/decker502/flixrail/pkg/content"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// assetSource 只提供资源的内容源
type assetSource struct {
	assets map[string][]byte
}

func (s *assetSource) Hero(context.Context) (*content.Hero, error)         { return nil, nil }
func (s *assetSource) Sections(context.Context) ([]content.Section, error) { return nil, nil }
func (s *assetSource) Asset(_ context.Context, ref string) ([]byte, error) {
	data, ok := s.assets[ref]
	if !ok {
		return nil, &content.FetchError{URL: ref, Status: 404}
	}
	return data, nil
}

// TestDecodePoster 测试海报解码与裁剪
func TestDecodePoster(t *testing.T) {
	img, err := DecodePoster(pngBytes(t, 400, 300), 120, 180)
	if err != nil {
		t.Fatalf("DecodePoster() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 180 {
		t.Errorf("尺寸 = %dx%d, 期望 120x180", b.Dx(), b.Dy())
	}

	orig, err := DecodePoster(pngBytes(t, 40, 30), 0, 0)
	if err != nil || orig.Bounds().Dx() != 40 {
		t.Errorf("不缩放时应返回原图, got %v, %v", orig, err)
	}

	if _, err := DecodePoster([]byte("<html>not an image</html>"), 10, 10); !errors.Is(err, ErrNotImage) {
		t.Errorf("非图片 error = %v, 期望 ErrNotImage", err)
	}

	// PNG 头但数据损坏
	broken := pngBytes(t, 10, 10)[:40]
	if _, err := DecodePoster(broken, 10, 10); err == nil || errors.Is(err, ErrNotImage) {
		t.Errorf("损坏的 PNG error = %v, 期望解码错误", err)
	}
}

func waitState(t *testing.T, rm *ResourceManager, ref string, w, h int, want ImageState) error {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		state, err := rm.State(ref, w, h)
		if state == want {
			return err
		}
		time.Sleep(5 * time.Millisecond)
	}
	state, _ := rm.State(ref, w, h)
	t.Fatalf("状态 = %v, 期望 %v", state, want)
	return nil
}

// TestResourceManagerFetch 测试后台获取
func TestResourceManagerFetch(t *testing.T) {
	src := &assetSource{assets: map[string][]byte{
		"ok.png":  pngBytes(t, 50, 50),
		"bad.txt": []byte("plain text"),
	}}
	rm := NewResourceManager(context.Background(), src, nil)

	if state, _ := rm.State("ok.png", 20, 30); state != ImageMissing {
		t.Errorf("未请求时状态 = %v, 期望 ImageMissing", state)
	}

	rm.RequestImage("ok.png", 20, 30)
	rm.RequestImage("bad.txt", 20, 30)
	rm.RequestImage("missing.png", 20, 30)
	rm.RequestImage("", 20, 30)

	waitState(t, rm, "ok.png", 20, 30, ImageReady)
	if err := waitState(t, rm, "bad.txt", 20, 30, ImageFailed); !errors.Is(err, ErrNotImage) {
		t.Errorf("bad.txt error = %v, 期望 ErrNotImage", err)
	}
	err := waitState(t, rm, "missing.png", 20, 30, ImageFailed)
	var fe *content.FetchError
	if !errors.As(err, &fe) || fe.Status != 404 {
		t.Errorf("missing.png error = %v, 期望 404 FetchError", err)
	}
	if rm.Loading() != 0 {
		t.Errorf("Loading() = %d, 期望 0", rm.Loading())
	}

	rm.ForgetFailed()
	if state, _ := rm.State("missing.png", 20, 30); state != ImageMissing {
		t.Error("ForgetFailed 应移除失败的条目")
	}
	if state, _ := rm.State("ok.png", 20, 30); state != ImageReady {
		t.Error("ForgetFailed 不应移除成功的条目")
	}
}

// TestResourceManagerCanceled 测试取消的上下文
func TestResourceManagerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rm := NewResourceManager(ctx, &assetSource{}, nil)
	rm.RequestImage("x.png", 10, 10)
	if err := waitState(t, rm, "x.png", 10, 10, ImageFailed); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, 期望 context.Canceled", err)
	}
}

// TestLoadFont 测试字体缓存
func TestLoadFont(t *testing.T) {
	rm := NewResourceManager(context.Background(), &assetSource{}, nil)
	a, err := rm.LoadFont(FontRegular, 16)
	if err != nil {
		t.Fatalf("LoadFont() error = %v", err)
	}
	b := rm.Font(FontRegular, 16)
	if a != b {
		t.Error("相同样式和字号应返回缓存的字体")
	}
	bold := rm.Font(FontBold, 16)
	if bold == a || bold.Source == a.Source {
		t.Error("粗体应使用不同的字体源")
	}
	if rm.Font(FontRegular, 24).Source != a.Source {
		t.Error("不同字号应共享字体源")
	}
}
