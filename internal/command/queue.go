package command

import "sync"

// Queue is a FIFO of commands shared by every producer and drained by
// the dispatch loop.
type Queue struct {
	mu    sync.Mutex
	items []Command
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends c. Nop commands are dropped and Push returns false.
func (q *Queue) Push(c Command) bool {
	if c.Kind == Nop {
		return false
	}
	q.mu.Lock()
	q.items = append(q.items, c)
	q.mu.Unlock()
	return true
}

// Pop removes and returns the oldest command.
func (q *Queue) Pop() (Command, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Command{}, false
	}
	c := q.items[0]
	q.items[0] = Command{}
	q.items = q.items[1:]
	return c, true
}

// Len returns the number of pending commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
