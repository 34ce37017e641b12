// SPDX-License-Identifier: MIT

// Package catalog exposes the read-only media variant model. Variant rows
// are owned by upload management; this service only selects and resolves
// them for playback.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when a title or variant does not exist.
var ErrNotFound = errors.New("catalog: not found")

// Variant is a single playable rendition of a title. Exactly one of
// FilePath (relative to the media root) and RemoteURL is set.
type Variant struct {
	ID        int64
	TitleID   int64
	FilePath  string
	RemoteURL string
	MimeType  string
	Quality   string
	Trailer   bool
	CreatedAt time.Time
}

// SourceKind classifies where a variant's bytes live.
type SourceKind int

const (
	SourceUnavailable SourceKind = iota
	SourceLocal
	SourceRemote
)

// Source resolves the variant's physical location. Remote wins when both
// are somehow set; neither set means the row is dangling.
func (v Variant) Source() SourceKind {
	switch {
	case v.RemoteURL != "":
		return SourceRemote
	case v.FilePath != "":
		return SourceLocal
	default:
		return SourceUnavailable
	}
}

// Store is the narrow seam to the catalog collaborator.
type Store interface {
	TitleExists(ctx context.Context, titleID int64) (bool, error)
	VariantByID(ctx context.Context, id int64) (Variant, error)
	VariantsByTitle(ctx context.Context, titleID int64) ([]Variant, error)
}

// preferredQualities is the selection order when the client does not ask
// for a specific rendition.
var preferredQualities = []string{"1080p", "720p", "480p", "360p"}

// Filter narrows variant selection. Nil Trailer means "either".
type Filter struct {
	Quality string
	Trailer *bool
}

// Select picks the variant to play from a title's renditions: an explicit
// quality match first, otherwise the best quality in preference order,
// otherwise the newest of whatever is left. Returns ErrNotFound when
// nothing matches.
func Select(variants []Variant, f Filter) (Variant, error) {
	pool := make([]Variant, 0, len(variants))
	for _, v := range variants {
		if f.Trailer != nil && v.Trailer != *f.Trailer {
			continue
		}
		pool = append(pool, v)
	}
	if len(pool) == 0 {
		return Variant{}, ErrNotFound
	}

	if f.Quality != "" {
		if v, ok := newestWithQuality(pool, f.Quality); ok {
			return v, nil
		}
		return Variant{}, ErrNotFound
	}

	for _, q := range preferredQualities {
		if v, ok := newestWithQuality(pool, q); ok {
			return v, nil
		}
	}

	// No known quality label at all; fall back to the newest row.
	best := pool[0]
	for _, v := range pool[1:] {
		if v.CreatedAt.After(best.CreatedAt) {
			best = v
		}
	}
	return best, nil
}

func newestWithQuality(variants []Variant, quality string) (Variant, bool) {
	var best Variant
	found := false
	for _, v := range variants {
		if !strings.EqualFold(v.Quality, quality) {
			continue
		}
		if !found || v.CreatedAt.After(best.CreatedAt) {
			best = v
			found = true
		}
	}
	return best, found
}
