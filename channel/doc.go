// SPDX-License-Identifier: EPL-2.0

// Package channel schedules playbacks onto a fixed set of voices.
//
// Each Scheduler owns N voices and N playback slots. Voices are handed out
// round-robin; when every voice is busy the next one in rotation is taken
// from whatever playback holds it. Attack and release fades are driven by
// Tick rather than by goroutines, so a scheduler that is never ticked never
// changes gain on its own. A fade belongs to the slot generation it was
// started under and silently dies when the slot moves on.
//
// With crossfade enabled a channel has exactly two voices; each Play fades
// the previous playback out while the new one fades in.
//
// All methods are safe for concurrent use.
package channel
