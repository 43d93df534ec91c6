// SPDX-License-Identifier: EPL-2.0

package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
)

// Loader opens the encoded bytes of an address. The returned name is used to
// pick a decoder by extension.
type Loader interface {
	Open(ctx context.Context, address string) (name string, rc io.ReadCloser, err error)
}

// FSLoader reads addresses as slash separated paths in FS. An address
// without an extension is tried with each of Exts in order.
type FSLoader struct {
	FS   fs.FS
	Exts []string
}

func (l FSLoader) Open(ctx context.Context, address string) (string, io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	candidates := []string{address}
	if path.Ext(address) == "" {
		candidates = candidates[:0]
		for _, ext := range l.Exts {
			candidates = append(candidates, address+"."+ext)
		}
	}

	for _, name := range candidates {
		f, err := l.FS.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", nil, fmt.Errorf("opening %q: %w", name, err)
		}
		return name, f, nil
	}

	return "", nil, fmt.Errorf("%q: %w", address, fs.ErrNotExist)
}
