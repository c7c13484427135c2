// ABOUTME: Package documentation for the playback package
// ABOUTME: Session state machine over the shared output device

// Package playback turns decoded clips into sound. A Controller owns
// the shared output device and at most one active Session at a time;
// starting a new session stops the previous one, explicit stops are
// idempotent, and a session that plays its clip to the end reports
// back through a callback registered when it was created.
package playback
