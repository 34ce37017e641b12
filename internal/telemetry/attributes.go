// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across the application.
const (
	HTTPMethodKey     = "http.method"
	HTTPStatusCodeKey = "http.status_code"
	HTTPRouteKey      = "http.route"

	PlaybackAssetIDKey = "playback.asset_id"
	PlaybackTitleIDKey = "playback.title_id"
	PlaybackQualityKey = "playback.quality"
	PlaybackSourceKey  = "playback.source"
)

// HTTPAttributes creates common HTTP span attributes. URLs are never
// recorded because stream query strings carry signatures.
func HTTPAttributes(method, route string, statusCode int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(HTTPMethodKey, method),
		attribute.String(HTTPRouteKey, route),
		attribute.Int(HTTPStatusCodeKey, statusCode),
	}
}

// PlaybackAttributes creates playback-related span attributes.
func PlaybackAttributes(assetID, titleID int64, quality, source string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Int64(PlaybackAssetIDKey, assetID),
		attribute.Int64(PlaybackTitleIDKey, titleID),
	}
	if quality != "" {
		attrs = append(attrs, attribute.String(PlaybackQualityKey, quality))
	}
	if source != "" {
		attrs = append(attrs, attribute.String(PlaybackSourceKey, source))
	}
	return attrs
}
