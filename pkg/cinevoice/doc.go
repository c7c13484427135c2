// ABOUTME: Package documentation for the cinevoice package
// ABOUTME: Studio orchestration over sampling, analysis, speech, playback

// Package cinevoice produces AI narrations for videos. A Studio wires
// a frame sampler, a scene analyzer, and a speech synthesizer into one
// pipeline: Produce runs a video through all three and returns a
// Production holding the narration report and the decoded audio clip.
// The studio also owns playback of productions and WAV export.
//
// The collaborators are interfaces, so callers can swap the AI service,
// the speech engine, or the output device without touching the
// pipeline.
package cinevoice
