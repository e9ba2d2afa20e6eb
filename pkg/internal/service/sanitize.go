package service

import (
	"path/filepath"
	"strings"
)

// safeRune 判断文件名字符是否保留. 与存储 key 兼容的白名单：
// 字母数字、点、横线、下划线，其余替换为下划线.
func safeRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return r
	case r == '.' || r == '-' || r == '_':
		return r
	case r == ' ':
		return '_'
	default:
		return -1
	}
}

// SanitizeFilename 把原始文件名净化为存储安全的 key：
// 去掉路径成分，空格转下划线，丢弃白名单以外的字符，折叠首尾的点.
func SanitizeFilename(filename string) string {
	// 去掉客户端可能带上的路径（包括 Windows 风格）
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)

	cleaned := strings.Map(safeRune, filename)
	cleaned = strings.Trim(cleaned, "._")

	return cleaned
}

// DisplayName 展示名：原始文件名去掉最后一个扩展名.
func DisplayName(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx <= 0 {
		return filename
	}

	return filename[:idx]
}
