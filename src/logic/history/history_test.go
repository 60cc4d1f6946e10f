package history

import (
	"context"
	"fenview/src/logic/convert/convfen"
	"fmt"
	"testing"
	"time"
)

func fill(t *testing.T, s Store, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		e := Entry{Time: time.Unix(int64(i), 0).UTC(), FEN: fmt.Sprintf("fen-%d", i), Valid: i%2 == 0}
		if !e.Valid {
			e.Kind = convfen.KindBadActiveColor
			e.Message = "active color: must be 'w' or 'b'"
		}
		if err := s.Push(context.Background(), e); err != nil {
			t.Fatalf("Push: %v", err)
		}
	}
}

func testStore(t *testing.T, open func(limit int) Store) {
	t.Run("NewestFirst", func(t *testing.T) {
		s := open(10)
		defer s.Close()
		fill(t, s, 3)

		got, err := s.Recent(context.Background(), 0)
		if err != nil {
			t.Fatalf("Recent: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		for i, want := range []string{"fen-2", "fen-1", "fen-0"} {
			if got[i].FEN != want {
				t.Errorf("got[%d] = %s, want %s", i, got[i].FEN, want)
			}
		}
		if got[1].Valid || got[1].Kind != convfen.KindBadActiveColor {
			t.Errorf("entry fields lost: %+v", got[1])
		}
	})

	t.Run("Limit", func(t *testing.T) {
		s := open(4)
		defer s.Close()
		fill(t, s, 9)

		got, err := s.Recent(context.Background(), 0)
		if err != nil {
			t.Fatalf("Recent: %v", err)
		}
		if len(got) != 4 {
			t.Fatalf("len = %d, want 4", len(got))
		}
		if got[0].FEN != "fen-8" || got[3].FEN != "fen-5" {
			t.Errorf("unexpected window: %s .. %s", got[0].FEN, got[3].FEN)
		}

		two, err := s.Recent(context.Background(), 2)
		if err != nil {
			t.Fatalf("Recent: %v", err)
		}
		if len(two) != 2 || two[0].FEN != "fen-8" {
			t.Errorf("Recent(2) = %+v", two)
		}
	})

	t.Run("Cancelled", func(t *testing.T) {
		s := open(4)
		defer s.Close()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := s.Push(ctx, Entry{FEN: "x"}); err == nil {
			t.Errorf("Push with cancelled context should fail")
		}
	})
}

func TestMemoryStore(t *testing.T) {
	testStore(t, func(limit int) Store { return NewMemoryStore(limit) })

	s := NewMemoryStore(2)
	s.Close()
	if err := s.Push(context.Background(), Entry{}); err != ErrClosed {
		t.Errorf("Push after Close = %v, want ErrClosed", err)
	}
}

func TestBadgerStore(t *testing.T) {
	testStore(t, func(limit int) Store {
		s, err := OpenBadgerInMemory(limit)
		if err != nil {
			t.Fatalf("OpenBadgerInMemory: %v", err)
		}
		return s
	})
}

func TestBadgerStoreReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenBadgerStore(dir, 10)
	if err != nil {
		t.Fatalf("OpenBadgerStore: %v", err)
	}
	fill(t, s, 2)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = OpenBadgerStore(dir, 10)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	fill(t, s, 1)

	got, err := s.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 || got[0].FEN != "fen-0" || got[1].FEN != "fen-1" {
		t.Errorf("after reopen got %+v", got)
	}
}
