// ABOUTME: Base64 speech-payload codec
// ABOUTME: Converts base64 audio payloads to raw bytes and back
package payload

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrMalformedPayload indicates the payload is not valid base64
var ErrMalformedPayload = errors.New("malformed base64 payload")

// Decode converts a base64 payload string to raw bytes.
// Returns ErrMalformedPayload (wrapped) for any input that is not
// valid standard base64; never recovers partial output.
func Decode(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return data, nil
}

// Encode converts raw bytes to a base64 payload string.
// Total inverse of Decode for any byte buffer.
func Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
