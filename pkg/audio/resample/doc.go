// ABOUTME: Package documentation for the resample package
// ABOUTME: Linear interpolation resampling between arbitrary sample rates

// Package resample converts audio between sample rates using linear
// interpolation. The shared output device keeps the rate it was opened
// with, so clips at a different rate are resampled before playback
// rather than reopening the device.
package resample
