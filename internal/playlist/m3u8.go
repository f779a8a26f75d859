package playlist

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/cadence/internal/library"
)

// ErrInvalidHeader is returned for files not starting with #EXTM3U.
var ErrInvalidHeader = errors.New("invalid m3u8 header")

const (
	header        = "#EXTM3U"
	tagPlaylist   = "#PLAYLIST:"
	tagArtist     = "#EXTART:"
	tagAlbum      = "#EXTALB:"
	tagInfo       = "#EXTINF:"
	propertyYear  = "year"
	propertyTrack = "number"
)

// Load reads the playlist stored at path.
func Load(path string) (*Playlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open playlist")
	}
	defer f.Close()

	p, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	p.Path = path
	return p, nil
}

// Save writes p to path, replacing any existing file.
func (p *Playlist) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create playlist file")
	}
	if err := p.Write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close playlist file")
	}
	p.Path = path
	return nil
}

// Write encodes p as extended M3U8.
func (p *Playlist) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(header + "\n")
	bw.WriteString(tagPlaylist + p.Name + "\n")
	for _, t := range p.Tracks {
		bw.WriteString(tagArtist + t.Artist + "\n")
		bw.WriteString(tagAlbum + t.Album + "\n")

		var info strings.Builder
		info.WriteString(tagInfo)
		info.WriteString(strconv.FormatInt(int64(t.Length/time.Second), 10))
		if t.Year != 0 {
			info.WriteString(" " + propertyYear + "=" + strconv.Itoa(t.Year))
		}
		if t.Number != 0 {
			info.WriteString(" " + propertyTrack + "=" + strconv.Itoa(t.Number))
		}
		info.WriteString(",")
		info.WriteString(t.Title)
		bw.WriteString(info.String() + "\n")

		bw.WriteString(t.Path + "\n")
	}
	return errors.Wrap(bw.Flush(), "write playlist")
}

// Read decodes an extended M3U8 playlist. Unknown comment lines are
// ignored. Tracks without artist or album get library.Unknown.
func Read(r io.Reader) (*Playlist, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, errors.Wrap(err, "read playlist")
		}
		return nil, errors.Wrap(ErrInvalidHeader, "empty file")
	}
	if first := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff")); first != header {
		return nil, errors.Wrapf(ErrInvalidHeader, "%q", first)
	}

	p := &Playlist{}
	next := pendingTrack{}
	lineNum := 1
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r")
		switch {
		case line == "":
		case strings.HasPrefix(line, tagPlaylist):
			p.Name = strings.TrimPrefix(line, tagPlaylist)
		case strings.HasPrefix(line, tagArtist):
			next.artist = strings.TrimPrefix(line, tagArtist)
		case strings.HasPrefix(line, tagAlbum):
			next.album = strings.TrimPrefix(line, tagAlbum)
		case strings.HasPrefix(line, tagInfo):
			if err := next.parseInfo(strings.TrimPrefix(line, tagInfo)); err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNum)
			}
		case strings.HasPrefix(line, "#"):
		default:
			p.Tracks = append(p.Tracks, next.track(line))
			next = pendingTrack{}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read playlist")
	}

	if p.Name == "" {
		p.Name = DefaultName
	}
	return p, nil
}

// pendingTrack accumulates the tags preceding a path line.
type pendingTrack struct {
	artist, album, title string
	length               time.Duration
	year, number         int
}

// parseInfo parses "<seconds> [key=value ...],<title>".
func (pt *pendingTrack) parseInfo(info string) error {
	props, title, ok := strings.Cut(info, ",")
	if !ok {
		return errors.Newf("#EXTINF missing comma: %q", info)
	}
	pt.title = title

	fields := strings.Fields(props)
	if len(fields) == 0 {
		return nil
	}
	if secs, err := strconv.Atoi(fields[0]); err == nil && secs > 0 {
		pt.length = time.Duration(secs) * time.Second
	}
	for _, f := range fields[1:] {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			return errors.Newf("#EXTINF property %q is not a key-value pair", f)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		switch key {
		case propertyYear:
			pt.year = n
		case propertyTrack:
			pt.number = n
		}
	}
	return nil
}

func (pt *pendingTrack) track(path string) library.Track {
	t := library.Track{
		Title:  pt.title,
		Artist: pt.artist,
		Album:  pt.album,
		Year:   pt.year,
		Number: pt.number,
		Length: pt.length,
		Path:   path,
	}
	if t.Artist == "" {
		t.Artist = library.Unknown
	}
	if t.Album == "" {
		t.Album = library.Unknown
	}
	return t
}
