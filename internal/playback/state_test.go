package playback

import (
	"sync"
	"testing"
	"time"

	"github.com/llehouerou/cadence/internal/library"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusStopped, "Stopped"},
		{StatusPlaying, "Playing"},
		{StatusPaused, "Paused"},
		{Status(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestRepeatMode_StringAndNext(t *testing.T) {
	tests := []struct {
		mode RepeatMode
		name string
		next RepeatMode
	}{
		{RepeatOff, "Off", RepeatOne},
		{RepeatOne, "One", RepeatAll},
		{RepeatAll, "All", RepeatOff},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.mode.Next(); got != tt.next {
			t.Errorf("%v.Next() = %v, want %v", tt.mode, got, tt.next)
		}
	}
}

func TestSnapshot_Status(t *testing.T) {
	tr := &library.Track{Path: "/a.mp3"}
	tests := []struct {
		name string
		s    Snapshot
		want Status
	}{
		{"nothing loaded", Snapshot{}, StatusStopped},
		{"playing", Snapshot{Track: tr, Playing: true}, StatusPlaying},
		{"paused", Snapshot{Track: tr}, StatusPaused},
		{"stopped", Snapshot{Track: tr, Stopped: true}, StatusStopped},
		{"playing wins over stopped", Snapshot{Track: tr, Playing: true, Stopped: true}, StatusPlaying},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Status(); got != tt.want {
				t.Errorf("Status() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	sh := NewShared()
	sh.update(func(s *Snapshot) {
		s.Track = &library.Track{Title: "original"}
	})

	snap := sh.Snapshot()
	snap.Track.Title = "changed"

	if got := sh.Snapshot().Track.Title; got != "original" {
		t.Errorf("Track.Title = %q, want original", got)
	}
}

func TestShared_Setters(t *testing.T) {
	sh := NewShared()

	sh.SetShuffle(true)
	sh.SetRepeat(RepeatAll)

	s := sh.Snapshot()
	if !s.Shuffle || s.Repeat != RepeatAll {
		t.Errorf("Shuffle=%v Repeat=%v, want true All", s.Shuffle, s.Repeat)
	}
}

func TestShared_ConcurrentReadersSeeConsistentState(t *testing.T) {
	sh := NewShared()
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for range 4 {
		wg.Go(func() {
			for {
				select {
				case <-stop:
					return
				default:
				}
				s := sh.Snapshot()
				if s.HasProgress && s.Track == nil {
					t.Error("progress without a track")
					return
				}
				if s.Playing && s.Track == nil {
					t.Error("playing without a track")
					return
				}
			}
		})
	}

	for i := range 1000 {
		sh.update(func(s *Snapshot) {
			if i%2 == 0 {
				s.Track = &library.Track{Path: "/a.mp3"}
				s.HasProgress = true
				s.Progress = time.Duration(i)
				s.Playing = true
			} else {
				s.Track = nil
				s.HasProgress = false
				s.Progress = 0
				s.Playing = false
			}
		})
	}
	close(stop)
	wg.Wait()
}

func TestQueueable_Tracks(t *testing.T) {
	a := tracks("A", "B")
	artist := library.Artist{Name: "x", Albums: []library.Album{{Name: library.AllAlbums, Tracks: a}}}
	album := library.Album{Tracks: tracks("C", "B", "A")}

	tests := []struct {
		name string
		q    Queueable
		want []string
	}{
		{"empty", Queueable{}, []string{}},
		{"artist", ArtistOf(artist), []string{"A", "B"}},
		{"artist without albums", ArtistOf(library.Artist{Name: "y"}), []string{}},
		{"album keeps stored order", AlbumOf(album), []string{"C", "B", "A"}},
		{"playlist", PlaylistOf(tracks("Z", "Y")), []string{"Z", "Y"}},
		{"track list", TrackListOf(tracks("M")), []string{"M"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(tt.q.Tracks())
			if len(got) != len(tt.want) {
				t.Fatalf("Tracks() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Tracks()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestQueueable_TracksReturnsFreshSlice(t *testing.T) {
	list := tracks("A", "B")
	q := TrackListOf(list)

	got := q.Tracks()
	got[0].Title = "changed"

	if list[0].Title != "A" {
		t.Errorf("source mutated: %q", list[0].Title)
	}
}

func TestKind_String(t *testing.T) {
	if KindTrackList.String() != "TrackList" || KindEmpty.String() != "Empty" {
		t.Error("unexpected Kind names")
	}
}
