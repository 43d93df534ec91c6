// SPDX-License-Identifier: EPL-2.0

// Package envelope ramps a voice gain linearly towards a target.
//
// A Ramp is advanced explicitly: Start applies the immediate cases and Step
// moves it forward by the time elapsed since the previous tick. Nothing in
// this package keeps time or spawns goroutines, so a fade is fully
// reproducible when driven with a fixed dt.
//
// # Ceilings
//
// A ramp can be capped by a Ceiling that is evaluated on every step rather
// than once at the start. The channel scheduler passes its current base
// volume, so lowering the channel volume during an attack pulls the fade down
// without restarting it. An uncapped ramp always reaches its literal target.
//
// # Cancellation
//
// Ramps have no cancellation of their own. The owner stamps each ramp with a
// generation and drops it when the generation it was started under is no
// longer current.
package envelope
