// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PageStatus is the existence state of one title as reported by the wiki.
type PageStatus struct {
	// Title is the page title as the wiki reports it, after normalization
	// has been mapped back to the requested form.
	Title string `json:"title" yaml:"title"`

	// Missing is true only when the wiki explicitly marks the page missing.
	Missing bool `json:"missing,omitempty" yaml:"missing,omitempty"`

	// Invalid is true when the wiki rejected the title outright.
	Invalid bool `json:"invalid,omitempty" yaml:"invalid,omitempty"`
}

// Exists reports whether the page is present in the wiki.
func (p PageStatus) Exists() bool {
	return !p.Missing && !p.Invalid
}

// PageStatusResult is the answer to one batched existence query.
type PageStatusResult struct {
	// Pages holds one entry per title in the response, in response order.
	Pages []PageStatus `json:"pages" yaml:"pages"`

	// Raw is the undecoded response body, kept for diagnostics.
	Raw string `json:"-" yaml:"-"`
}
