// SPDX-License-Identifier: MIT

// Package delivery implements range-aware local file serving: Range header
// parsing, chunked streaming and the partial-content response contract.
package delivery

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNoRange means the header is absent or malformed; the caller
	// serves the whole file. Malformed headers deliberately fall back to
	// full-body responses instead of a 400 so older players keep working.
	ErrNoRange = errors.New("no byte range requested")

	// ErrUnsatisfiable means the range is syntactically valid but outside
	// the file bounds; the caller answers 416.
	ErrUnsatisfiable = errors.New("range not satisfiable")
)

// Range is an inclusive byte span within a file of known size.
type Range struct {
	Start int64
	End   int64
}

// Length returns the number of bytes the range covers.
func (r Range) Length() int64 {
	return r.End - r.Start + 1
}

// ParseRange parses a single-range "Range" header of the form
// "bytes=<start>-[<end>]" against a file of the given size. Multi-range
// and suffix ("bytes=-N") forms are not served partially; they fall back
// to the whole file like any other malformed header.
func ParseRange(header string, size int64) (Range, error) {
	if header == "" {
		return Range{}, ErrNoRange
	}

	const prefix = "bytes="
	if !strings.HasPrefix(header, prefix) {
		return Range{}, ErrNoRange
	}

	spec := strings.TrimPrefix(header, prefix)
	if strings.Contains(spec, ",") {
		return Range{}, ErrNoRange
	}

	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return Range{}, ErrNoRange
	}

	startStr := strings.TrimSpace(parts[0])
	endStr := strings.TrimSpace(parts[1])
	if startStr == "" {
		return Range{}, ErrNoRange
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 0 {
		return Range{}, ErrNoRange
	}
	if start >= size {
		return Range{}, ErrUnsatisfiable
	}

	end := size - 1
	if endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil {
			return Range{}, ErrNoRange
		}
		if end >= size || end < start {
			return Range{}, ErrUnsatisfiable
		}
	}

	return Range{Start: start, End: end}, nil
}

// FormatContentRange formats the Content-Range header for a 206 response.
func FormatContentRange(r Range, size int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", r.Start, r.End, size)
}

// Format416ContentRange formats the Content-Range header for a 416 response.
func Format416ContentRange(size int64) string {
	return fmt.Sprintf("bytes */%d", size)
}
