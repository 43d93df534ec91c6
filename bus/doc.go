// SPDX-License-Identifier: EPL-2.0

// Package bus implements mixer group volume knobs.
//
// A bus maps a 0..100 volume onto a decibel range from MinDB up to its
// configured maximum and exposes the result as a linear level. Buses nest:
// the level of a group bus includes the level of its parent, so turning the
// master down turns everything down.
package bus
