// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dyk turns a parsed "Did You Know" template into a DykEntry.
//
// The positional parameters are overloaded: the second one is either a bare
// year continuing the date ({{dyktalk|5 April|2020|... that ...}}) or the
// hook itself ({{dyktalk|5 April 2020|... that ...}}). When the template does
// not name its nomination page, the resolver probes the two conventional
// locations with a single wiki query.
package dyk

import (
	"context"
	"fmt"

	"github.com/pdiddy/article-history/pkg/types"
)

// Resolver builds DykEntry records. It holds no per-resolution state, so one
// Resolver may serve many goroutines as long as its Fetcher does.
type Resolver struct {
	Fetcher StatusFetcher
}

// NewResolver returns a Resolver that probes nomination pages with fetcher.
func NewResolver(fetcher StatusFetcher) *Resolver {
	return &Resolver{Fetcher: fetcher}
}

// Resolve extracts the DYK record for article from tmpl. It issues at most
// one call to the fetcher, and none when the template carries nompage.
// Errors from the fetcher are returned wrapped; nothing is retried here.
func (r *Resolver) Resolve(ctx context.Context, article string, tmpl *types.Template) (*types.DykEntry, error) {
	numeric := secondIsNumeric(tmpl)

	date, err := extractDate(article, tmpl, numeric)
	if err != nil {
		return nil, err
	}
	hook := extractHook(tmpl, numeric)

	var nomPage *string
	if page, ok := tmpl.NamedValue(paramNomPage); ok {
		nomPage = &page
	} else {
		if r.Fetcher == nil {
			return nil, fmt.Errorf("%s: no nompage parameter and no status fetcher configured", article)
		}
		nomPage, err = probeNomPage(ctx, r.Fetcher, article)
		if err != nil {
			return nil, err
		}
	}

	return &types.DykEntry{Date: date, Hook: hook, NomPage: nomPage}, nil
}
