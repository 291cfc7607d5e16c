// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for article-history.
// Template is the already-parsed template invocation handed to resolvers,
// DykEntry is the resolved "Did You Know" record, and PageStatus is what the
// wiki query capability reports per title.
package types

import "iter"

// DykPrefix namespaces the keys a DykEntry contributes to an output template.
const DykPrefix = "dyk"

// DykEntry field names, in emission order.
const (
	DykFieldDate  = "date"
	DykFieldEntry = "entry"
	DykFieldNom   = "nom"
)

// DykEntry is a resolved "Did You Know" appearance for one article.
//
// Date is always set. Hook and NomPage are nil when the template did not
// yield a value; a non-nil pointer to an empty string means the value was
// supplied but empty.
type DykEntry struct {
	// Date is the appearance date: a single template token, or two tokens
	// joined by a space when the second is a bare number (e.g. "5 April 2020").
	Date string `json:"date" yaml:"date"`

	// Hook is the promotional blurb ("... that ...").
	Hook *string `json:"hook,omitempty" yaml:"hook,omitempty"`

	// NomPage is the title of the nomination discussion page.
	NomPage *string `json:"nompage,omitempty" yaml:"nompage,omitempty"`
}

// HasHook reports whether a hook was resolved.
func (e DykEntry) HasHook() bool { return e.Hook != nil }

// HasNomPage reports whether a nomination page was resolved.
func (e DykEntry) HasNomPage() bool { return e.NomPage != nil }

// Prefix returns DykPrefix.
func (e DykEntry) Prefix() string { return DykPrefix }

// Fields yields date, then entry when a hook was resolved, then nom when a
// nomination page was resolved.
func (e DykEntry) Fields() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if !yield(DykFieldDate, e.Date) {
			return
		}
		if e.Hook != nil && !yield(DykFieldEntry, *e.Hook) {
			return
		}
		if e.NomPage != nil {
			yield(DykFieldNom, *e.NomPage)
		}
	}
}

// ToParams yields the record as prefixed output parameters: dyk.date, then
// dyk.entry and dyk.nom when present.
func (e DykEntry) ToParams() iter.Seq2[string, string] {
	return ToParams(e)
}

// Param is one flattened key/value pair destined for an output template.
type Param struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}
