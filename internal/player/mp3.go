package player

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

// mp3Bytes is the size of one decoded frame: 16-bit stereo.
const mp3Bytes = 4

// mp3Stream adapts go-mp3, which reports exact sample counts and seeks
// by sample, to beep.StreamSeekCloser. The file is owned by the caller.
type mp3Stream struct {
	dec *mp3.Decoder
	buf []byte
	err error
}

func decodeMP3(r io.Reader) (beep.StreamSeekCloser, beep.Format, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, beep.Format{}, err
	}
	if dec.SampleRate() <= 0 {
		return nil, beep.Format{}, errors.New("mp3: invalid sample rate")
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(dec.SampleRate()),
		NumChannels: 2,
		Precision:   2,
	}
	return &mp3Stream{dec: dec}, format, nil
}

func (s *mp3Stream) Stream(samples [][2]float64) (int, bool) {
	if s.err != nil {
		return 0, false
	}
	need := len(samples) * mp3Bytes
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	read, err := io.ReadFull(s.dec, s.buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		s.err = err
		return 0, false
	}
	n := read / mp3Bytes
	for i := range n {
		frame := s.buf[i*mp3Bytes:]
		samples[i][0] = float64(int16(binary.LittleEndian.Uint16(frame))) / 32768
		samples[i][1] = float64(int16(binary.LittleEndian.Uint16(frame[2:]))) / 32768
	}
	return n, n > 0
}

func (s *mp3Stream) Err() error { return s.err }

func (s *mp3Stream) Len() int {
	return max(int(s.dec.SampleCount()), 0)
}

func (s *mp3Stream) Position() int {
	return int(s.dec.SamplePosition())
}

func (s *mp3Stream) Seek(p int) error {
	p = min(max(p, 0), s.Len())
	if err := s.dec.SeekToSample(int64(p)); err != nil {
		return errors.Wrap(err, "mp3 seek")
	}
	s.err = nil
	return nil
}

func (s *mp3Stream) Close() error { return nil }
