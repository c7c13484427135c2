// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for all audio decoders
package decode

import (
	"errors"

	"github.com/CineVoice/cinevoice-go/pkg/audio"
)

// ErrUnsupportedFormat indicates a format the decoders cannot handle
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Decoder decodes audio payloads to normalized float clips
type Decoder interface {
	// Decode converts encoded audio data to a clip
	Decode(data []byte) (audio.Clip, error)

	// Close releases decoder resources
	Close() error
}
