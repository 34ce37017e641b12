// SPDX-License-Identifier: MIT

package delivery

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrPathEscape means a stored file path points outside the media root.
var ErrPathEscape = errors.New("path escapes media root")

// SafeResolve joins a stored relative file path onto the media root and
// verifies the result stays inside it, following symlinks. Asset rows are
// operator-supplied, so a bad row must not be able to expose arbitrary
// files.
func SafeResolve(root, rel string) (string, os.FileInfo, error) {
	if rel == "" || strings.HasSuffix(rel, "/") {
		return "", nil, os.ErrNotExist
	}
	if hasTraversal(rel) {
		return "", nil, ErrPathEscape
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", nil, err
	}

	full := filepath.Join(absRoot, filepath.FromSlash(rel))

	realPath, err := filepath.EvalSymlinks(full)
	if err != nil {
		return "", nil, err
	}
	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", nil, err
	}

	relPath, err := filepath.Rel(realRoot, realPath)
	if err != nil || strings.HasPrefix(relPath, "..") || filepath.IsAbs(relPath) {
		return "", nil, ErrPathEscape
	}

	info, err := os.Stat(realPath)
	if err != nil {
		return "", nil, err
	}
	if info.IsDir() {
		return "", nil, os.ErrNotExist
	}

	return realPath, info, nil
}

// hasTraversal checks for parent-directory escapes, including ones hidden
// behind repeated URL encoding, overlong UTF-8 and NUL bytes.
func hasTraversal(p string) bool {
	decoded := p
	for i := 0; i < 3; i++ {
		prev := decoded
		if d, err := url.PathUnescape(decoded); err == nil {
			decoded = d
		} else if d2, err2 := url.QueryUnescape(decoded); err2 == nil {
			decoded = d2
		}
		if decoded == prev {
			break
		}
	}

	lower := strings.ToLower(decoded)
	for _, pat := range []string{"..", "%00", "%c0%ae", "%e0%80%ae"} {
		if strings.Contains(lower, pat) {
			return true
		}
	}
	if strings.IndexByte(decoded, 0x00) >= 0 {
		return true
	}

	normalized := strings.ToLower(norm.NFC.String(decoded))
	return strings.Contains(normalized, "..")
}
