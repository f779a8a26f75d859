package playback

const eventBufferSize = 16

// Subscription receives engine events. A subscriber that falls more than
// eventBufferSize events behind on a channel misses the overflow. Done is
// closed when the engine closes.
type Subscription struct {
	StatusChanged <-chan StatusChange
	TrackChanged  <-chan TrackChange
	ModeChanged   <-chan ModeChange
	Done          <-chan struct{}

	status chan StatusChange
	track  chan TrackChange
	mode   chan ModeChange
	done   chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		status: make(chan StatusChange, eventBufferSize),
		track:  make(chan TrackChange, eventBufferSize),
		mode:   make(chan ModeChange, eventBufferSize),
		done:   make(chan struct{}),
	}
	s.StatusChanged, s.TrackChanged, s.ModeChanged, s.Done = s.status, s.track, s.mode, s.done
	return s
}

func (s *Subscription) close() { close(s.done) }

// offer sends v unless ch is full.
func offer[T any](ch chan<- T, v T) {
	select {
	case ch <- v:
	default:
	}
}
