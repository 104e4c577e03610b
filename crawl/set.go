package crawl

import "sync"

// URLSet is an exact set of URLs that grows monotonically.
// Membership is never approximate: a URL reported as seen was added.
// It is safe for concurrent use by multiple goroutines.
type URLSet struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

// NewURLSet creates an empty URLSet.
func NewURLSet() *URLSet {
	return &URLSet{urls: make(map[string]struct{})}
}

// Add inserts url and reports whether it was new.
// The check and the insert happen atomically.
func (s *URLSet) Add(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.urls[url]; ok {
		return false
	}
	s.urls[url] = struct{}{}
	return true
}

// Contains reports whether url has been added.
func (s *URLSet) Contains(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.urls[url]
	return ok
}

// Len returns the number of URLs in the set.
func (s *URLSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.urls)
}
