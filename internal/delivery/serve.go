// SPDX-License-Identifier: MIT

package delivery

import (
	"io"
	"net/http"
	"strconv"
)

// DefaultContentType is used when a variant has no stored MIME type.
const DefaultContentType = "application/octet-stream"

// writeCommonHeaders sets the headers shared by every stream response.
// Content is access-controlled per signed URL, so shared caches must not
// hold it.
func writeCommonHeaders(w http.ResponseWriter, mimeType string) {
	if mimeType == "" {
		mimeType = DefaultContentType
	}
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Cache-Control", "no-cache, private")
}

// Write416 writes a 416 Range Not Satisfiable response with an empty body.
func Write416(w http.ResponseWriter, size int64) {
	w.Header().Set("Content-Range", Format416ContentRange(size))
	w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
}

// ServeFile answers a GET or HEAD for an open local file, honouring the
// request's Range header: 200 with the full body when no usable range is
// present, 206 with the clipped span for a valid range, 416 when the range
// is out of bounds. Bytes are streamed in fixed-size chunks; the caller
// owns the file handle and closes it on every exit path.
func ServeFile(w http.ResponseWriter, req *http.Request, src io.ReadSeeker, size int64, mimeType string, chunkSize int) {
	writeCommonHeaders(w, mimeType)

	rng, err := ParseRange(req.Header.Get("Range"), size)
	switch {
	case err == nil:
		w.Header().Set("Content-Range", FormatContentRange(rng, size))
		w.Header().Set("Content-Length", strconv.FormatInt(rng.Length(), 10))
		w.WriteHeader(http.StatusPartialContent)
		if req.Method != http.MethodHead {
			_, _ = CopyRange(w, src, rng, chunkSize)
		}

	case err == ErrUnsatisfiable:
		Write416(w, size)

	default: // ErrNoRange: absent or malformed header, serve everything
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
		w.WriteHeader(http.StatusOK)
		if req.Method != http.MethodHead {
			_, _ = CopyRange(w, src, Range{Start: 0, End: size - 1}, chunkSize)
		}
	}
}
