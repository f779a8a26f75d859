package player

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// SampleRate is the output rate every source is resampled to.
const SampleRate = beep.SampleRate(44100)

const resampleQuality = 4

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extOGG  = ".ogg"
	extWAV  = ".wav"
)

// Source is a decoded audio file.
type Source struct {
	Path     string
	Length   time.Duration
	Streamer beep.Streamer

	closers []io.Closer
}

// Close releases the decoder and the underlying file.
func (s *Source) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Decode opens the file at path and prepares it for playback at SampleRate.
func Decode(path string) (*Source, error) {
	streamer, format, f, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	var out beep.Streamer = streamer
	if format.SampleRate != SampleRate {
		out = beep.Resample(resampleQuality, format.SampleRate, SampleRate, streamer)
	}

	return &Source{
		Path:     path,
		Length:   format.SampleRate.D(streamer.Len()),
		Streamer: out,
		closers:  []io.Closer{streamer, f},
	}, nil
}

// Probe returns the duration of the audio file at path.
func Probe(path string) (time.Duration, error) {
	streamer, format, f, err := decodeFile(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	defer streamer.Close()
	return format.SampleRate.D(streamer.Len()), nil
}

func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, *os.File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case extMP3, extFLAC, extOGG, extWAV:
	default:
		return nil, beep.Format{}, nil, errors.Wrapf(ErrUnsupportedFormat, "%s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, nil, errors.Wrap(err, "open audio file")
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case extMP3:
		streamer, format, err = decodeMP3(f)
	case extFLAC:
		// Some taggers prepend an ID3v2 block the FLAC decoder rejects.
		if err = skipID3v2(f); err == nil {
			streamer, format, err = flac.Decode(f)
		}
	case extOGG:
		streamer, format, err = vorbis.Decode(f)
	case extWAV:
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, nil, errors.Wrapf(err, "decode %s", filepath.Base(path))
	}
	return streamer, format, f, nil
}

// skipID3v2 positions r after an ID3v2 tag, or at the start when there is none.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	if n < len(header) || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Tag size is a syncsafe integer: 7 bits per byte.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
