// SPDX-License-Identifier: EPL-2.0

// Package output provides the device voices the channel scheduler drives.
//
// A Voice sounds one clip at a time and exposes a linear gain in [0,1]. A
// Device hands out voices that all share its sample rate and channel layout;
// clips in another layout are converted when played.
//
// # Backends
//
//   - OtoDevice plays through the system audio device using oto. Each voice
//     owns an oto.Player per playback and maps its gain onto Player.SetVolume.
//     Building with the headless tag replaces it with a stub.
//   - Renderer is an offline software mixer. Time only advances when Render
//     is called, which makes it deterministic and suitable for tests and for
//     rendering scripted sessions to WAV.
//
// # Bus levels
//
// Every voice can be given a Level, usually a mixer bus. The level is applied
// under the voice gain when samples are produced, so the voice gain reported
// by Gain stays exactly what the scheduler set.
package output
