package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func testFace(t *testing.T) *text.GoTextFace {
	t.Helper()
	faceSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Skipf("无法创建字体源: %v", err)
	}
	return &text.GoTextFace{Source: faceSource, Size: 16}
}

// TestWrapText 测试文本换行功能
func TestWrapText(t *testing.T) {
	font := testFace(t)

	tests := []struct {
		name      string
		input     string
		maxWidth  float64
		expectMin int // 期望最少的行数
	}{
		{"短文本不换行", "Short title", 1000, 1},
		{"长文本自动换行", "A retired assassin returns for one last job that goes terribly wrong.", 200, 2},
		{"空文本", "", 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, font, tt.maxWidth)
			if len(lines) < tt.expectMin {
				t.Errorf("期望至少 %d 行，实际得到 %d 行", tt.expectMin, len(lines))
			}
			for i, line := range lines {
				if w := measureTextWidth(line, font); w > tt.maxWidth {
					t.Errorf("第 %d 行 %q 宽度 %.1f 超过 %.0f", i+1, line, w, tt.maxWidth)
				}
			}
		})
	}
}

// TestWrapTextBreaksAtSpaces 测试优先在空格处断行
func TestWrapTextBreaksAtSpaces(t *testing.T) {
	font := testFace(t)
	input := "alpha beta gamma delta epsilon zeta eta theta"
	lines := WrapText(input, font, measureTextWidth("alpha beta gamma", font)+1)

	if len(lines) < 2 {
		t.Fatalf("期望换行, got %v", lines)
	}
	words := strings.Fields(input)
	var rejoined []string
	for _, l := range lines {
		rejoined = append(rejoined, strings.Fields(l)...)
	}
	if strings.Join(rejoined, " ") != strings.Join(words, " ") {
		t.Errorf("单词被拆开: %q", lines)
	}
}

// TestWrapTextLines 测试最大行数
func TestWrapTextLines(t *testing.T) {
	font := testFace(t)
	input := strings.Repeat("word ", 60)
	lines := WrapTextLines(input, font, 150, 3)
	if len(lines) != 3 {
		t.Fatalf("行数 = %d, 期望 3", len(lines))
	}
	if !strings.HasSuffix(lines[2], Ellipsis) {
		t.Errorf("最后一行 %q 应以省略号结尾", lines[2])
	}
}

// TestTruncateText 测试截断
func TestTruncateText(t *testing.T) {
	font := testFace(t)

	if got := TruncateText("Short", font, 1000); got != "Short" {
		t.Errorf("TruncateText() = %q, 期望原文", got)
	}
	got := TruncateText("The Extraordinarily Long Title Of A Film", font, 100)
	if !strings.HasSuffix(got, Ellipsis) {
		t.Errorf("TruncateText() = %q, 期望以省略号结尾", got)
	}
	if w := measureTextWidth(got, font); w > 100 {
		t.Errorf("截断后宽度 %.1f 超过 100", w)
	}
}

// TestWrapTextEdgeCases 测试边界情况
func TestWrapTextEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		font     *text.GoTextFace
		maxWidth float64
		wantLen  int
	}{
		{"nil font", "测试", nil, 100, 1},
		{"zero maxWidth", "测试", &text.GoTextFace{Size: 22}, 0, 1},
		{"negative maxWidth", "测试", &text.GoTextFace{Size: 22}, -100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, tt.font, tt.maxWidth)
			if len(lines) != tt.wantLen {
				t.Errorf("期望 %d 行，实际得到 %d 行", tt.wantLen, len(lines))
			}
		})
	}
}
