package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Ellipsis 截断标记
const Ellipsis = "…"

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 优先在空格处断行
//   - 如果单词太长超过最大宽度，强制断行
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}
	if measureTextWidth(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""
	lastSpace := -1 // currentLine 中最后一个空格的字节位置

	for len(textStr) > 0 {
		r, size := utf8.DecodeRuneInString(textStr)
		char := string(r)
		textStr = textStr[size:]

		testLine := currentLine + char
		if measureTextWidth(testLine, font) <= maxWidth {
			currentLine = testLine
			if r == ' ' {
				lastSpace = len(currentLine) - 1
			}
			continue
		}

		switch {
		case currentLine == "":
			// 单个字符就超宽，强制占一行
			lines = append(lines, char)
		case r == ' ':
			lines = append(lines, strings.TrimSpace(currentLine))
			currentLine = ""
		case lastSpace > 0:
			lines = append(lines, strings.TrimSpace(currentLine[:lastSpace]))
			currentLine = currentLine[lastSpace+1:] + char
		default:
			lines = append(lines, currentLine)
			currentLine = char
		}
		lastSpace = strings.LastIndexByte(currentLine, ' ')
	}

	if strings.TrimSpace(currentLine) != "" {
		lines = append(lines, strings.TrimSpace(currentLine))
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// WrapTextLines 换行并限制最大行数，超出部分在最后一行末尾截断
func WrapTextLines(textStr string, font *text.GoTextFace, maxWidth float64, maxLines int) []string {
	lines := WrapText(textStr, font, maxWidth)
	if maxLines <= 0 || len(lines) <= maxLines {
		return lines
	}
	lines = lines[:maxLines]
	last := lines[maxLines-1] + " " + Ellipsis
	lines[maxLines-1] = TruncateText(last, font, maxWidth)
	return lines
}

// TruncateText 截断文本使其宽度不超过 maxWidth，截断时追加省略号
func TruncateText(textStr string, font *text.GoTextFace, maxWidth float64) string {
	if font == nil || maxWidth <= 0 || measureTextWidth(textStr, font) <= maxWidth {
		return textStr
	}
	runes := []rune(strings.TrimSuffix(textStr, Ellipsis))
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := strings.TrimRight(string(runes), " ") + Ellipsis
		if measureTextWidth(candidate, font) <= maxWidth {
			return candidate
		}
	}
	return Ellipsis
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}
