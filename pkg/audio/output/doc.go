// ABOUTME: Audio output package for playback backends
// ABOUTME: Provides Device/Voice interfaces with oto and null implementations
// Package output abstracts the audio playback backend behind Device and
// Voice interfaces.
//
// The Oto device drives real hardware via ebitengine/oto. The platform
// permits a single oto context per process, so the device opens lazily
// on first use and is reused for every subsequent session; callers
// resample to the opened format rather than reopening.
//
// The Null device renders silence on a wall-clock timer and backs
// headless runs and tests.
package output
