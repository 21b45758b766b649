package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/index"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
)

var ErrSessionNotFound = errors.New("session not found")

// session is one uploaded export: the parsed table and its search index.
type session struct {
	id      string
	name    string
	created time.Time
	table   *parse.Table

	mu     sync.RWMutex // guards db against Close during a query
	db     *index.DB
	closed bool
}

// withDB runs fn with the session's index unless the session was closed.
func (s *session) withDB(fn func(*index.DB) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrSessionNotFound
	}
	return fn(s.db)
}

func (s *session) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// sessions holds uploaded exports, least recently used first out. Entries
// expire after ttl; an evicted session's index is closed.
type sessions struct {
	lru *expirable.LRU[string, *session]
}

func newSessions(limit int, ttl time.Duration, onClose func(*session, error)) *sessions {
	evict := func(_ string, s *session) {
		onClose(s, s.close())
	}
	return &sessions{lru: expirable.NewLRU[string, *session](limit, evict, ttl)}
}

func (ss *sessions) add(name string, t *parse.Table, db *index.DB) *session {
	s := &session{
		id:      uuid.NewString(),
		name:    name,
		created: time.Now(),
		table:   t,
		db:      db,
	}
	ss.lru.Add(s.id, s)
	return s
}

func (ss *sessions) get(id string) (*session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}
	s, ok := ss.lru.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (ss *sessions) remove(id string) bool {
	return ss.lru.Remove(id)
}

func (ss *sessions) len() int {
	return ss.lru.Len()
}

// purge closes every session.
func (ss *sessions) purge() {
	ss.lru.Purge()
}
