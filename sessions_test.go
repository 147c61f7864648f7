package odeglue

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

func TestSessionsIsolation(t *testing.T) {
	s := NewSessions()
	a := s.Create(language.English)
	b := s.Create(language.Hebrew)
	if a == b {
		t.Fatal("Create returned the same id twice")
	}

	err := s.Do(a, func(c *Catalog) error {
		c.Append(must(c.Toolbox().Zero(-1, 1)))
		c.Append(must(c.Toolbox().Positive(1, 0)))
		return nil
	})
	if err != nil {
		t.Fatalf("Do(a): %v", err)
	}

	pa, langA, err := s.Snapshot(a)
	if err != nil || len(pa) != 2 || langA != language.English {
		t.Errorf("Snapshot(a) = %d pieces, %v, %v", len(pa), langA, err)
	}
	pb, langB, err := s.Snapshot(b)
	if err != nil || len(pb) != 0 || langB != language.Hebrew {
		t.Errorf("Snapshot(b) = %d pieces, %v, %v", len(pb), langB, err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestSessionsUnknownAndDelete(t *testing.T) {
	s := NewSessions()
	if err := s.Do(uuid.New(), func(*Catalog) error { return nil }); !errors.Is(err, ErrUnknownSession) {
		t.Errorf("Do(unknown) error = %v, want ErrUnknownSession", err)
	}

	id := s.Create(language.English)
	if err := s.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(id); !errors.Is(err, ErrUnknownSession) {
		t.Errorf("second Delete error = %v, want ErrUnknownSession", err)
	}
	if _, _, err := s.Snapshot(id); !errors.Is(err, ErrUnknownSession) {
		t.Errorf("Snapshot after Delete error = %v", err)
	}
}

func TestSessionsDoReturnsCallbackError(t *testing.T) {
	s := NewSessions()
	id := s.Create(language.English)
	sentinel := errors.New("rejected")
	if err := s.Do(id, func(*Catalog) error { return sentinel }); err != sentinel {
		t.Errorf("Do error = %v, want %v", err, sentinel)
	}
}

func TestSessionsConcurrentAppends(t *testing.T) {
	s := NewSessions()
	ids := []uuid.UUID{s.Create(language.English), s.Create(language.English)}

	const perSession = 50
	var wg sync.WaitGroup
	for _, id := range ids {
		for i := 0; i < perSession; i++ {
			wg.Add(1)
			go func(id uuid.UUID) {
				defer wg.Done()
				_ = s.Do(id, func(c *Catalog) error {
					c.Append(must(NewInitialPoint(0, 0)))
					return nil
				})
			}(id)
		}
	}
	wg.Wait()

	for _, id := range ids {
		pieces, _, err := s.Snapshot(id)
		if err != nil || len(pieces) != perSession {
			t.Errorf("session %s has %d pieces (%v), want %d", id, len(pieces), err, perSession)
		}
	}
}
