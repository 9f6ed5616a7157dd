package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"
)

// decode opens path and picks the decoder from its extension.
// The returned streamer owns the file: closing it closes the file. The
// decoders close the file themselves when they fail.
func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".mp3" && ext != ".flac" && ext != ".wav" {
		return nil, beep.Format{}, fmt.Errorf("unsupported format: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	switch ext {
	case ".mp3":
		return decodeMP3(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return wav.Decode(f)
	}
}

// ReadDuration returns the length of an audio file without playing it.
func ReadDuration(path string) (time.Duration, error) {
	streamer, format, err := decode(path)
	if err != nil {
		return 0, err
	}
	defer streamer.Close()

	n := streamer.Len()
	if n <= 0 || format.SampleRate == 0 {
		return 0, fmt.Errorf("unknown length: %s", filepath.Base(path))
	}
	return format.SampleRate.D(n), nil
}
