// ABOUTME: Video frame sampling via ffmpeg and ffprobe
// ABOUTME: Extracts capped JPEG frame sets for the scene analyzer
package frames

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/CineVoice/cinevoice-go/pkg/cinevoice"
)

// DefaultJPEGQuality is ffmpeg's -q:v value for extracted frames.
// 2 is near the high end of the JPEG quality scale.
const DefaultJPEGQuality = 2

// Extractor samples frames from video files by shelling out to ffmpeg.
// It implements the studio's Sampler contract.
type Extractor struct {
	// JPEGQuality is the -q:v value passed to ffmpeg
	JPEGQuality int
}

// NewExtractor creates an extractor with default quality
func NewExtractor() *Extractor {
	return &Extractor{JPEGQuality: DefaultJPEGQuality}
}

// Sample extracts up to maxFrames JPEG frames at the given rate and
// returns them in order with timestamps derived from the rate.
func (e *Extractor) Sample(ctx context.Context, videoPath string, fps float64, maxFrames int) ([]cinevoice.Frame, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("invalid frame rate: %g", fps)
	}
	if maxFrames <= 0 {
		return nil, fmt.Errorf("invalid frame cap: %d", maxFrames)
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	tempDir, err := os.MkdirTemp("", "cinevoice-frames")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	outPattern := filepath.Join(tempDir, "frame-%05d.jpg")
	quality := e.JPEGQuality
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", extractArgs(videoPath, outPattern, fps, maxFrames, quality)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg extraction failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	paths, err := filepath.Glob(filepath.Join(tempDir, "frame-*.jpg"))
	if err != nil {
		return nil, fmt.Errorf("failed to list frames: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no frames extracted from %s", videoPath)
	}

	frames := make([]cinevoice.Frame, 0, len(paths))
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read frame %s: %w", path, err)
		}
		frames = append(frames, cinevoice.Frame{
			Data:      data,
			MIME:      "image/jpeg",
			Index:     i,
			Timestamp: timestampFor(i, fps),
		})
	}

	return frames, nil
}

// ProbeDuration reports the video's duration via ffprobe
func ProbeDuration(ctx context.Context, videoPath string) (time.Duration, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return 0, fmt.Errorf("ffprobe not found in PATH: %w", err)
	}

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=nw=1:nk=1",
		videoPath)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %s: %w", videoPath, err)
	}

	return parseDuration(string(out))
}

// extractArgs builds the ffmpeg argument list for one extraction run
func extractArgs(videoPath, outPattern string, fps float64, maxFrames, quality int) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-nostdin", "-y",
		"-i", videoPath,
		"-map", "0:v:0",
		"-vsync", "vfr",
		"-vf", fmt.Sprintf("fps=%g:round=up:start_time=0", fps),
		"-q:v", strconv.Itoa(quality),
		"-frames:v", strconv.Itoa(maxFrames),
		outPattern,
	}
}

// parseDuration converts ffprobe's duration output to a Duration.
// ffprobe prints "N/A" for streams without one.
func parseDuration(out string) (time.Duration, error) {
	s := strings.TrimSpace(out)
	if s == "" || s == "N/A" {
		return 0, fmt.Errorf("no duration reported")
	}
	seconds, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable duration %q: %w", s, err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// timestampFor places frame i on the sampling clock
func timestampFor(index int, fps float64) time.Duration {
	return time.Duration(float64(index) / fps * float64(time.Second))
}
