package crawl

import "sync"

// Session holds the mutable state of one mirroring run: the FIFO queue of
// pages still to visit, the set of pages already visited, and the set of
// assets already scheduled for download. Pages and assets are tracked
// separately.
type Session struct {
	Visited *URLSet
	Assets  *URLSet

	mu    sync.Mutex
	queue []string
}

// NewSession creates a Session whose queue holds the given seed URLs.
func NewSession(seeds ...string) *Session {
	s := &Session{
		Visited: NewURLSet(),
		Assets:  NewURLSet(),
	}
	s.Push(seeds...)
	return s
}

// Push appends page URLs to the back of the queue.
// Duplicates are allowed; Pop callers deduplicate against Visited.
func (s *Session) Push(urls ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, urls...)
}

// Pop removes and returns the front of the queue.
// The bool result is false if the queue is empty.
func (s *Session) Pop() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return "", false
	}
	url := s.queue[0]
	s.queue[0] = ""
	s.queue = s.queue[1:]
	return url, true
}

// Len returns the number of queued URLs.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
