// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dyk

import (
	"unicode"

	"github.com/pdiddy/article-history/pkg/types"
)

// Named parameters recognized on DYK templates.
const (
	paramEntry   = "entry"
	paramNomPage = "nompage"
)

// isNumeric reports whether every rune of s is a decimal digit. An empty
// string counts as numeric.
func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// secondIsNumeric reports whether the second positional parameter is a bare
// number continuing the date (a year) rather than the hook.
func secondIsNumeric(tmpl *types.Template) bool {
	second, ok := tmpl.UnnamedAt(1)
	return ok && isNumeric(second)
}

// extractDate returns the appearance date. When the second positional
// parameter is numeric it is appended to the first with one space.
func extractDate(article string, tmpl *types.Template, numeric bool) (string, error) {
	if numeric {
		// Index 1 being present implies index 0 is.
		return tmpl.Unnamed[0] + " " + tmpl.Unnamed[1], nil
	}
	first, ok := tmpl.UnnamedAt(0)
	if !ok {
		return "", &MissingParameterError{Article: article}
	}
	return first, nil
}

// extractHook returns the hook: the named entry parameter, else the first
// positional parameter after the date.
func extractHook(tmpl *types.Template, numeric bool) *string {
	if entry, ok := tmpl.NamedValue(paramEntry); ok {
		return &entry
	}
	idx := 1
	if numeric {
		idx = 2
	}
	if hook, ok := tmpl.UnnamedAt(idx); ok {
		return &hook
	}
	return nil
}
