// SPDX-License-Identifier: MIT

package delivery

import (
	"fmt"
	"io"
)

// DefaultChunkSize bounds memory per in-flight stream regardless of file size.
const DefaultChunkSize = 64 * 1024

// CopyRange streams the inclusive byte span [r.Start, r.End] from src to
// dst in chunks of at most chunkSize bytes, emitted in strictly increasing
// offset order. A short read (truncated file) ends the copy without error:
// whatever was flushed stays flushed and the truncation is the transport's
// problem. A write error (typically the client going away) stops the copy
// immediately and is returned so the caller can stop reading.
func CopyRange(dst io.Writer, src io.ReadSeeker, r Range, chunkSize int) (int64, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	if _, err := src.Seek(r.Start, io.SeekStart); err != nil {
		return 0, fmt.Errorf("delivery: seek to %d: %w", r.Start, err)
	}

	buf := make([]byte, chunkSize)
	var written int64
	remaining := r.Length()

	for remaining > 0 {
		n := int64(chunkSize)
		if n > remaining {
			n = remaining
		}

		read, rerr := src.Read(buf[:n])
		if read > 0 {
			wrote, werr := dst.Write(buf[:read])
			written += int64(wrote)
			remaining -= int64(wrote)
			if werr != nil {
				return written, werr
			}
			if wrote < read {
				return written, io.ErrShortWrite
			}
		}
		if rerr != nil {
			// EOF before the expected byte count is a short read, not an
			// application error.
			if rerr == io.EOF {
				return written, nil
			}
			return written, fmt.Errorf("delivery: read: %w", rerr)
		}
		if read == 0 {
			return written, nil
		}
	}

	return written, nil
}
