package service

import "strings"

// FileKind 扩展名分类结果：展示标签、图标字形与颜色记号.
type FileKind struct {
	Label     string
	IconClass string
	Color     string
}

// kindTable 已知扩展名的分类表：安装包、两类移动端应用包与常见压缩格式.
var kindTable = map[string]FileKind{
	"exe": {Label: "PC", IconClass: "fa-brands fa-windows", Color: "text-cyan-400"},
	"apk": {Label: "ANDROID", IconClass: "fa-brands fa-android", Color: "text-green-400"},
	"ipa": {Label: "iOS", IconClass: "fa-brands fa-apple", Color: "text-slate-300"},
	"zip": {Label: "ARCHIVE", IconClass: "fa-solid fa-file-zipper", Color: "text-yellow-500"},
	"rar": {Label: "ARCHIVE", IconClass: "fa-solid fa-file-zipper", Color: "text-yellow-600"},
	"7z":  {Label: "ARCHIVE", IconClass: "fa-solid fa-file-zipper", Color: "text-orange-500"},
}

// Classify 把文件扩展名映射为展示分类. 全函数：未知扩展名回退到
// 大写扩展名标签 + 通用图标，绝不失败. 对扩展名大小写不敏感.
func Classify(ext string) FileKind {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))

	if kind, ok := kindTable[ext]; ok {
		return kind
	}

	if ext == "" {
		ext = "file"
	}

	return FileKind{
		Label:     strings.ToUpper(ext),
		IconClass: "fa-solid fa-box-open",
		Color:     "text-blue-400",
	}
}

// ClassifyFilename 取文件名最后一个扩展名做分类.
func ClassifyFilename(filename string) FileKind {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return Classify("")
	}

	return Classify(filename[idx+1:])
}
