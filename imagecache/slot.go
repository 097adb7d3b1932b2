package imagecache

import "sync"

// Token identifies one request made on behalf of a Slot.
type Token struct {
	URL  string
	slot *Slot
	gen  uint64
}

// Slot is a place an image is displayed, such as a list row that gets reused
// for different items. Every Assign invalidates the tokens handed out before
// it, so a fetch that completes after its slot moved on can be discarded.
type Slot struct {
	mu      sync.Mutex
	gen     uint64
	current Token
}

func (s *Slot) Assign(url string) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.current = Token{URL: url, slot: s, gen: s.gen}
	return s.current
}

// Current reports whether t is still the slot's outstanding request.
func (s *Slot) Current(t Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return t.slot == s && t == s.current
}

func (s *Slot) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.current = Token{}
}
