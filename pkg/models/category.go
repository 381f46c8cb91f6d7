package models

import (
	"path/filepath"
	"strings"
)

// Category is a data category derived from a file extension
type Category string

const (
	CategoryCSV   Category = "csv"
	CategoryExcel Category = "excel"
	CategoryText  Category = "text"
	CategoryJSON  Category = "json"
)

// EmailKey is the key under which mail profiles appear in results and summary
const EmailKey = "email"

var categoryOrder = []Category{CategoryCSV, CategoryExcel, CategoryText, CategoryJSON}

var categoryExtensions = map[Category][]string{
	CategoryCSV:   {"csv"},
	CategoryExcel: {"xlsx", "xls", "xlsm", "xlsb"},
	CategoryText:  {"txt", "md", "log", "rtf"},
	CategoryJSON:  {"json"},
}

var extensionCategory = buildExtensionIndex()

func buildExtensionIndex() map[string]Category {
	index := make(map[string]Category)
	for category, exts := range categoryExtensions {
		for _, ext := range exts {
			index[ext] = category
		}
	}
	return index
}

// Categories returns every category in a stable order
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Extensions returns the extensions (without dot) mapped to a category
func Extensions(c Category) []string {
	exts := categoryExtensions[c]
	out := make([]string, len(exts))
	copy(out, exts)
	return out
}

// Classify maps a file path to its category by extension, case-insensitively.
// The second return value is false when the extension is not recognized.
func Classify(path string) (Category, bool) {
	name := filepath.Base(path)
	// ".csv" is a dotfile without an extension
	if strings.LastIndex(name, ".") <= 0 {
		return "", false
	}

	ext := strings.ToLower(filepath.Ext(name)[1:])
	category, ok := extensionCategory[ext]
	return category, ok
}
