// Package session holds the working state of a frequency analysis of one
// cipher text: the committed substitution map, edits staged against it and an
// append-only history of saved attempts.
package session

import (
	"sync"
	"time"
	"unicode"

	"github.com/bgallie/classicrypt/cryptors"
	"github.com/bgallie/classicrypt/cryptors/frequency"
	"github.com/bgallie/classicrypt/cryptors/substitution"
	"github.com/friendsofgo/errors"
	"github.com/oklog/ulid/v2"
)

// TimestampLayout is the layout of Attempt.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// Attempt is a saved snapshot of a session.  Saved attempts are never
// modified.
type Attempt struct {
	ID            string
	Timestamp     string
	Ciphertext    string
	Substitutions substitution.Map
	DecodedText   string
	Frequencies   frequency.Table
}

func (a Attempt) clone() Attempt {
	a.Substitutions = a.Substitutions.Clone()
	a.Frequencies = a.Frequencies.Clone()
	return a
}

// Session is safe for concurrent use.  Staged edits are not visible through
// Substitutions or Decoded until Commit.
type Session struct {
	mu          sync.RWMutex
	ciphertext  string
	frequencies frequency.Table
	committed   substitution.Map
	staged      map[rune]rune
	decoded     string
	history     []Attempt
	current     int
}

func New() *Session {
	return &Session{
		committed: make(substitution.Map),
		staged:    make(map[rune]rune),
		current:   -1,
	}
}

// SetCiphertext starts the analysis of text.  Frequencies are recomputed and
// both maps are cleared.  Setting the text already under analysis does
// nothing.
func (s *Session) SetCiphertext(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if text == s.ciphertext {
		return
	}
	s.ciphertext = text
	s.frequencies = frequency.Analyze(text)
	s.committed = make(substitution.Map)
	s.staged = make(map[rune]rune)
	s.current = -1
	s.render()
}

// Stage records the edit cipher -> plain.  A plain symbol that is not a
// letter, including 0, stages the removal of the mapping for cipher.
func (s *Session) Stage(cipher, plain rune) error {
	if !unicode.IsLetter(cipher) {
		return errors.Wrapf(cryptors.ErrInvalidInput, "cipher symbol %q is not a letter", cipher)
	}
	if !unicode.IsLetter(plain) {
		plain = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged[unicode.ToUpper(cipher)] = unicode.ToUpper(plain)
	return nil
}

// Staged returns a copy of the pending edits.  A zero value marks a removal.
func (s *Session) Staged() map[rune]rune {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := make(map[rune]rune, len(s.staged))
	for k, v := range s.staged {
		c[k] = v
	}
	return c
}

// Commit applies every staged edit in one step and renders the decoded text
// again.
func (s *Session) Commit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit()
}

func (s *Session) commit() {
	for c, p := range s.staged {
		if p == 0 {
			s.committed.Delete(c)
			continue
		}
		s.committed.Set(c, p)
	}
	s.staged = make(map[rune]rune)
	s.render()
}

// Revert discards the staged edits.
func (s *Session) Revert() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged = make(map[rune]rune)
}

// Clear removes every committed mapping and every staged edit.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed = make(substitution.Map)
	s.staged = make(map[rune]rune)
	s.render()
}

// AutoSubstitute replaces the staged edits with the mapping suggested by
// reference and commits them.
func (s *Session) AutoSubstitute(reference frequency.Table) substitution.Map {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := frequency.SuggestMapping(s.frequencies, reference)
	s.staged = make(map[rune]rune, len(m))
	for c, p := range m {
		s.staged[c] = p
	}
	s.commit()

	return m
}

// Import replaces the committed map with m and discards staged edits.
func (s *Session) Import(m substitution.Map) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.committed = make(substitution.Map, len(m))
	for c, p := range m {
		s.committed.Set(c, p)
	}
	s.staged = make(map[rune]rune)
	s.render()
}

// Save appends a snapshot of the committed state to the history, makes it the
// current attempt and returns it.
func (s *Session) Save(now time.Time) Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := Attempt{
		ID:            ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Timestamp:     now.Format(TimestampLayout),
		Ciphertext:    s.ciphertext,
		Substitutions: s.committed.Clone(),
		DecodedText:   s.decoded,
		Frequencies:   s.frequencies.Clone(),
	}
	s.history = append(s.history, a)
	s.current = len(s.history) - 1

	return a.clone()
}

// Load replaces the whole working state with attempt idx.
func (s *Session) Load(idx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx < 0 || idx >= len(s.history) {
		return errors.Wrapf(cryptors.ErrIndexOutOfRange, "attempt %d of %d", idx, len(s.history))
	}

	a := s.history[idx].clone()
	s.ciphertext = a.Ciphertext
	s.committed = a.Substitutions
	s.frequencies = a.Frequencies
	s.staged = make(map[rune]rune)
	s.current = idx
	s.render()

	return nil
}

// History returns copies of the saved attempts, oldest first.
func (s *Session) History() []Attempt {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h := make([]Attempt, len(s.history))
	for i, a := range s.history {
		h[i] = a.clone()
	}
	return h
}

// Current returns the index of the attempt last saved or loaded.  It is false
// when the cipher text changed since.
func (s *Session) Current() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current >= 0
}

func (s *Session) Ciphertext() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ciphertext
}

func (s *Session) Decoded() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.decoded
}

func (s *Session) Frequencies() frequency.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frequencies.Clone()
}

func (s *Session) Substitutions() substitution.Map {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committed.Clone()
}

// render must be called with mu held for writing.
func (s *Session) render() {
	s.decoded = frequency.Decode(s.ciphertext, s.committed)
}
