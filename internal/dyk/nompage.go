// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dyk

import (
	"context"
	"fmt"

	"github.com/pdiddy/article-history/pkg/types"
)

// Title prefixes of the two places a DYK nomination can live. Subpages of
// the nominations template are the current convention; older nominations
// were held on subpages of the talk page.
const (
	nominationSubpagePrefix = "Template:Did you know nominations/"
	talkNominationPrefix    = "Template talk:Did you know/"
)

// StatusFetcher reports whether wiki pages exist. Implementations must return
// one entry per requested title and mark nonexistent pages Missing.
type StatusFetcher interface {
	FetchPageStatus(ctx context.Context, titles []string) (types.PageStatusResult, error)
}

// Candidates returns the two titles probed for article's nomination page,
// in order of preference.
func Candidates(article string) (subpage, talk string) {
	return nominationSubpagePrefix + article, talkNominationPrefix + article
}

// probeNomPage queries both candidate titles in one request and returns the
// first that exists, or nil when neither does.
func probeNomPage(ctx context.Context, fetcher StatusFetcher, article string) (*string, error) {
	subpage, talk := Candidates(article)
	requested := []string{subpage, talk}

	res, err := fetcher.FetchPageStatus(ctx, requested)
	if err != nil {
		return nil, fmt.Errorf("%s: probing nomination pages: %w", article, err)
	}

	// Each candidate is matched against its own entry. A candidate the
	// response does not mention has no usable status.
	var subpageSeen, talkSeen, subpageExists, talkExists bool
	for _, page := range res.Pages {
		switch page.Title {
		case subpage:
			subpageSeen = true
			subpageExists = page.Exists()
		case talk:
			talkSeen = true
			talkExists = page.Exists()
		default:
			return nil, &IntegrityFaultError{
				Article:   article,
				Title:     page.Title,
				Reason:    "unrecognized title",
				Requested: requested,
				Response:  res.Raw,
			}
		}
	}
	for _, c := range []struct {
		title string
		seen  bool
	}{{subpage, subpageSeen}, {talk, talkSeen}} {
		if !c.seen {
			return nil, &IntegrityFaultError{
				Article:   article,
				Title:     c.title,
				Reason:    "no status for title",
				Requested: requested,
				Response:  res.Raw,
			}
		}
	}

	switch {
	case subpageExists:
		return &subpage, nil
	case talkExists:
		return &talk, nil
	default:
		return nil, nil
	}
}
