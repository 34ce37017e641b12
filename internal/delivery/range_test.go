// SPDX-License-Identifier: MIT

package delivery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	const size = 1000

	tests := []struct {
		name    string
		header  string
		want    Range
		wantErr error
	}{
		{"absent", "", Range{}, ErrNoRange},
		{"first hundred", "bytes=0-99", Range{0, 99}, nil},
		{"open ended", "bytes=500-", Range{500, 999}, nil},
		{"single last byte", "bytes=999-999", Range{999, 999}, nil},
		{"single first byte", "bytes=0-0", Range{0, 0}, nil},
		{"start at eof", "bytes=1000-1005", Range{}, ErrUnsatisfiable},
		{"end past eof", "bytes=0-1000", Range{}, ErrUnsatisfiable},
		{"inverted", "bytes=500-400", Range{}, ErrUnsatisfiable},
		{"wrong unit", "items=0-99", Range{}, ErrNoRange},
		{"no equals", "bytes 0-99", Range{}, ErrNoRange},
		{"suffix form", "bytes=-500", Range{}, ErrNoRange},
		{"multi range", "bytes=0-99,200-299", Range{}, ErrNoRange},
		{"garbage start", "bytes=abc-99", Range{}, ErrNoRange},
		{"garbage end", "bytes=0-xyz", Range{}, ErrNoRange},
		{"negative start", "bytes=--5-10", Range{}, ErrNoRange},
		{"no dash", "bytes=42", Range{}, ErrNoRange},
		{"whitespace tolerated", "bytes= 10 - 19 ", Range{10, 19}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.header, size)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRangeLength(t *testing.T) {
	r, err := ParseRange("bytes=0-99", 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(100), r.Length())

	r, err = ParseRange("bytes=999-999", 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1), r.Length())
}

func TestFormatContentRange(t *testing.T) {
	assert.Equal(t, "bytes 0-99/1000", FormatContentRange(Range{0, 99}, 1000))
	assert.Equal(t, "bytes */1000", Format416ContentRange(1000))
}
