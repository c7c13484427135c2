// ABOUTME: Version and identity constants
// ABOUTME: Single source for product name, manufacturer, and release
package version

const (
	// Product is the product name used in logs and download filenames
	Product = "CineVoice Narrator"

	// Manufacturer identifies the project
	Manufacturer = "CineVoice"

	// Version is the release version
	Version = "0.3.0"
)
