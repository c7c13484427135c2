// ABOUTME: Payload codec package for speech service responses
// ABOUTME: Provides base64 decode/encode with a malformed-input sentinel
// Package payload converts the base64 audio payloads returned by the
// speech synthesis service to raw PCM bytes and back.
//
// Malformed input fails with ErrMalformedPayload, matchable via
// errors.Is. Decode and Encode are total inverses:
//
//	data, err := payload.Decode(resp.Audio)
//	payload.Encode(data) == resp.Audio // modulo canonical padding
package payload
