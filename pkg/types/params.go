// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "iter"

// ParamSource is a record that can be flattened into output template
// parameters.
type ParamSource interface {
	// Prefix is the namespace joined to every field name.
	Prefix() string
	// Fields yields unprefixed field names and values in output order.
	Fields() iter.Seq2[string, string]
}

// Key joins a prefix and a field name into an output key ("dyk.date").
func Key(prefix, field string) string {
	return prefix + "." + field
}

// ToParams yields src's fields under prefixed keys. The sequence is lazy and
// reads src each time it is ranged over.
func ToParams(src ParamSource) iter.Seq2[string, string] {
	prefix := src.Prefix()
	return func(yield func(string, string) bool) {
		for field, value := range src.Fields() {
			if !yield(Key(prefix, field), value) {
				return
			}
		}
	}
}

// Collect drains seq into a slice.
func Collect(seq iter.Seq2[string, string]) []Param {
	var params []Param
	for k, v := range seq {
		params = append(params, Param{Key: k, Value: v})
	}
	return params
}
