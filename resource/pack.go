// SPDX-License-Identifier: EPL-2.0

package resource

import (
	"path"
	"strings"
)

// Pack is a named set of clips registered together and kept until a forced
// release.
type Pack struct {
	Name    string
	Entries []PackEntry
}

// PackEntry maps an address to the file holding it.
type PackEntry struct {
	Address string
	Path    string
}

// Key is the cache address of the entry. It defaults to the base name of
// Path without its extension.
func (e PackEntry) Key() string {
	if e.Address != "" || e.Path == "" {
		return e.Address
	}
	base := path.Base(e.Path)
	return strings.TrimSuffix(base, path.Ext(base))
}
