// SPDX-License-Identifier: EPL-2.0

// Package resource caches decoded clips by address, grouped so that a scene
// or level can drop everything it loaded in one call.
//
// Entries come in two kinds. Streamed entries are loaded on demand through a
// Loader and may be released at any time. Preloaded entries are registered
// from a Pack and survive ordinary releases; only a forced release drops
// them.
//
// The group named CommonGroup always exists and is never removed.
package resource
