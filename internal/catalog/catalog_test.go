// SPDX-License-Identifier: MIT

package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func variantsFixture() []Variant {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []Variant{
		{ID: 1, TitleID: 10, Quality: "480p", FilePath: "a.mp4", CreatedAt: base},
		{ID: 2, TitleID: 10, Quality: "720p", FilePath: "b.mp4", CreatedAt: base.Add(time.Hour)},
		{ID: 3, TitleID: 10, Quality: "720p", FilePath: "b2.mp4", CreatedAt: base.Add(2 * time.Hour)},
		{ID: 4, TitleID: 10, Quality: "1080p", FilePath: "c.mp4", Trailer: true, CreatedAt: base},
	}
}

func TestSelectPreferenceOrder(t *testing.T) {
	// No 1080p full feature exists, so 720p is next; the newer of the two
	// 720p rows wins.
	v, err := Select(variantsFixture(), Filter{Trailer: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, int64(3), v.ID)
}

func TestSelectExplicitQuality(t *testing.T) {
	v, err := Select(variantsFixture(), Filter{Quality: "480p"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.ID)

	// Case-insensitive match.
	v, err = Select(variantsFixture(), Filter{Quality: "1080P"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), v.ID)
}

func TestSelectExplicitQualityMissing(t *testing.T) {
	_, err := Select(variantsFixture(), Filter{Quality: "4k"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSelectTrailerFilter(t *testing.T) {
	v, err := Select(variantsFixture(), Filter{Trailer: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, int64(4), v.ID)
}

func TestSelectUnknownQualityFallsBackToNewest(t *testing.T) {
	vs := []Variant{
		{ID: 1, Quality: "master", CreatedAt: time.Unix(100, 0)},
		{ID: 2, Quality: "source", CreatedAt: time.Unix(200, 0)},
	}
	v, err := Select(vs, Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.ID)
}

func TestSelectEmpty(t *testing.T) {
	_, err := Select(nil, Filter{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVariantSource(t *testing.T) {
	assert.Equal(t, SourceLocal, Variant{FilePath: "a.mp4"}.Source())
	assert.Equal(t, SourceRemote, Variant{RemoteURL: "https://cdn.example/a.mp4"}.Source())
	assert.Equal(t, SourceRemote, Variant{FilePath: "a.mp4", RemoteURL: "https://cdn.example/a.mp4"}.Source())
	assert.Equal(t, SourceUnavailable, Variant{}.Source())
}
