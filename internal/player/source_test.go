package player

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkipID3v2(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantPos int64
	}{
		{"no tag", []byte("fLaC0000000000"), 0},
		{"short file", []byte("ID3"), 0},
		{"tag of 5 bytes", append([]byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 5}, []byte("xxxxxfLaC")...), 15},
		{"syncsafe size", append([]byte{'I', 'D', '3', 4, 0, 0, 0, 0, 1, 0}, make([]byte, 140)...), 138},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bytes.NewReader(tt.data)
			require.NoError(t, skipID3v2(r))
			pos, err := r.Seek(0, io.SeekCurrent)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPos, pos)
		})
	}
}

func TestDecode_UnsupportedExtension(t *testing.T) {
	_, err := Decode("/music/track.m4a")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Probe("/music/track.opus")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecode_MissingFile(t *testing.T) {
	_, err := Decode(filepath.Join(t.TempDir(), "missing.mp3"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecode_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a wave file"), 0o600))

	_, err := Decode(path)
	assert.Error(t, err)
}

func TestDecode_EmptyMP3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.mp3")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := Decode(path)
	assert.Error(t, err)
}

func TestSource_CloseIsIdempotent(t *testing.T) {
	c := &closeCounter{}
	src := &Source{closers: []io.Closer{c}}

	require.NoError(t, src.Close())
	require.NoError(t, src.Close())
	assert.Equal(t, 1, c.n)
}
