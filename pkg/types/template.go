// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Template is a parsed template invocation: positional parameters in order
// and named parameters keyed by name. Tokenizing wikitext into this shape
// happens upstream.
type Template struct {
	// Name is the template name as written (e.g. "dyktalk"). Informational.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Unnamed holds the positional parameters, index 0 first.
	Unnamed []string `json:"unnamed,omitempty" yaml:"unnamed,omitempty"`

	// Named maps parameter names to values. Names are unique.
	Named map[string]string `json:"named,omitempty" yaml:"named,omitempty"`
}

// UnnamedAt returns the positional parameter at zero-based index i.
func (t *Template) UnnamedAt(i int) (string, bool) {
	if t == nil || i < 0 || i >= len(t.Unnamed) {
		return "", false
	}
	return t.Unnamed[i], true
}

// NamedValue returns the named parameter called name.
func (t *Template) NamedValue(name string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.Named[name]
	return v, ok
}
