package services

import "sync"

type ChangeOp string

const (
	OpLoaded  ChangeOp = "loaded"
	OpCreated ChangeOp = "created"
	OpUpdated ChangeOp = "updated"
	OpDeleted ChangeOp = "deleted"
)

// ChangeEvent tells subscribers that a collection changed. ID is empty for
// whole-collection events such as loads and the total amount singleton.
type ChangeEvent struct {
	Collection string   `json:"collection"`
	Op         ChangeOp `json:"op"`
	ID         string   `json:"id,omitempty"`
}

const subscriberBuffer = 32

type subscribers struct {
	mu   sync.Mutex
	next int
	subs map[int]chan ChangeEvent
}

// publish never blocks: a subscriber whose buffer is full misses the event.
func (s *subscribers) publish(ev ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (s *subscribers) add() (<-chan ChangeEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]chan ChangeEvent)
	}
	id := s.next
	s.next++
	ch := make(chan ChangeEvent, subscriberBuffer)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// Subscribe returns a channel of change events and a function that unsubscribes
// and closes it. Events are delivered after the write has succeeded.
func (m *DataManager) Subscribe() (<-chan ChangeEvent, func()) {
	return m.subs.add()
}
