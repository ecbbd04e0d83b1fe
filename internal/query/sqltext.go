package query

import (
	"strings"
	"unicode"
)

var rowVerbs = map[string]bool{
	"select":    true,
	"with":      true,
	"values":    true,
	"table":     true,
	"show":      true,
	"describe":  true,
	"explain":   true,
	"pragma":    true,
	"from":      true,
	"summarize": true,
}

// ReturnsRows reports whether a statement produces a result set, judged by
// its leading keyword and any RETURNING clause. Leading comments and
// parentheses are skipped.
func ReturnsRows(sqlText string) bool {
	verb := leadingKeyword(sqlText)
	if rowVerbs[verb] {
		return true
	}
	switch verb {
	case "insert", "update", "delete", "merge":
		return containsWord(strings.ToLower(sqlText), "returning")
	}
	return false
}

// StripTrailingSemicolons removes statement terminators.
func StripTrailingSemicolons(sqlText string) string {
	trimmed := strings.TrimSpace(sqlText)
	for strings.HasSuffix(trimmed, ";") {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, ";"))
	}
	return trimmed
}

func leadingKeyword(sqlText string) string {
	text := skipComments(sqlText)
	text = strings.TrimLeft(text, "( \t\r\n")
	end := strings.IndexFunc(text, func(r rune) bool { return !unicode.IsLetter(r) })
	if end < 0 {
		end = len(text)
	}
	return strings.ToLower(text[:end])
}

func skipComments(text string) string {
	for {
		text = strings.TrimSpace(text)
		switch {
		case strings.HasPrefix(text, "--"):
			_, rest, found := strings.Cut(text, "\n")
			if !found {
				return ""
			}
			text = rest
		case strings.HasPrefix(text, "/*"):
			_, rest, found := strings.Cut(text, "*/")
			if !found {
				return ""
			}
			text = rest
		default:
			return text
		}
	}
}

func containsWord(text, word string) bool {
	for _, field := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '_'
	}) {
		if field == word {
			return true
		}
	}
	return false
}
