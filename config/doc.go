// SPDX-License-Identifier: EPL-2.0

// Package config reads audpool settings from YAML.
//
// Omitted fields take the same defaults a freshly created channel or bus
// would have: volume 50, one voice, 100 ms attack and release, crossfade off
// with 300 ms attack and release, duplicate play allowed.
package config
