package rewrite

import (
	"sort"
	"strings"
)

// dialectCorrections restores diacritics to Vietnamese phrases commonly
// typed without them. Keys are matched on whole-word boundaries so
// "kinh dien" is not damaged by the shorter "kinh di" entry.
var dialectCorrections = map[string]string{
	"am nhac":     "âm nhạc",
	"bi an":       "bí ẩn",
	"chien tranh": "chiến tranh",
	"gia dinh":    "gia đình",
	"gia tuong":   "giả tưởng",
	"hanh dong":   "hành động",
	"hoat hinh":   "hoạt hình",
	"hoi hop":     "hồi hộp",
	"kinh di":     "kinh dị",
	"lich su":     "lịch sử",
	"mien tay":    "miền tây",
	"phieu luu":   "phiêu lưu",
	"tai lieu":    "tài liệu",
	"the thao":    "thể thao",
	"tinh cam":    "tình cảm",
	"toi pham":    "tội phạm",
	"vien tuong":  "viễn tưởng",
}

// dialectKeys are sorted longest-first so overlapping phrases resolve
// the same way on every run.
var dialectKeys = func() []string {
	keys := make([]string, 0, len(dialectCorrections))
	for k := range dialectCorrections {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// CorrectDialect lowercases text and restores diacritics on known
// Vietnamese phrases. Text with no known misspellings comes back
// lowercased but otherwise unchanged.
func CorrectDialect(text string) string {
	lower := strings.ToLower(text)
	padded := " " + lower + " "
	for _, wrong := range dialectKeys {
		padded = strings.ReplaceAll(padded, " "+wrong+" ", " "+dialectCorrections[wrong]+" ")
	}
	return strings.TrimSpace(padded)
}
