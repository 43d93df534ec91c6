// SPDX-License-Identifier: EPL-2.0

package resource

import "errors"

var (
	ErrEmptyAddress = errors.New("empty address")
	ErrEmptyLabel   = errors.New("empty label")
	ErrUnknownLabel = errors.New("unknown label")
	ErrUnknownGroup = errors.New("unknown resource group")
	ErrNotLoaded    = errors.New("clip not loaded")
	ErrPreloaded    = errors.New("clip registered from a pack; release must be forced")
	ErrEmptyPack    = errors.New("pack has no entries")
)
