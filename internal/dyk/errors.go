// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dyk

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingParameter matches any *MissingParameterError.
	ErrMissingParameter = errors.New("missing template parameter")

	// ErrIntegrityFault matches any *IntegrityFaultError.
	ErrIntegrityFault = errors.New("existence probe integrity fault")
)

// MissingParameterError reports a DYK template without its first
// positional parameter (the date).
type MissingParameterError struct {
	Article string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s: no first unnamed parameter", e.Article)
}

// Is reports whether target is ErrMissingParameter.
func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}

// IntegrityFaultError reports an existence-probe response that does not line
// up with the request. The resolution is aborted; nothing is guessed.
type IntegrityFaultError struct {
	// Article is the article whose nomination page was being probed.
	Article string

	// Title is the unexpected title in the response, or the requested title
	// the response left out.
	Title string

	// Reason says which of the two happened.
	Reason string

	// Requested lists the candidate titles sent to the wiki.
	Requested []string

	// Response is the raw response body.
	Response string
}

func (e *IntegrityFaultError) Error() string {
	return fmt.Sprintf("%s: %s %q (requested [%s]): full response %s",
		e.Article, e.Reason, e.Title, strings.Join(e.Requested, " | "), e.Response)
}

// Is reports whether target is ErrIntegrityFault.
func (e *IntegrityFaultError) Is(target error) bool {
	return target == ErrIntegrityFault
}
