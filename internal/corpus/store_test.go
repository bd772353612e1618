package corpus

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hyperjump/cancerqa/internal/models"
)

func TestStore_Reload(t *testing.T) {
	tok := &countingTokenizer{calls: map[models.Language]int{}}
	var fail bool
	version := 0
	load := func(ctx context.Context) (*Corpus, error) {
		if fail {
			return nil, &LoadError{Source: "qa.xlsx", Kind: ErrSourceNotFound}
		}
		version++
		return Build([]models.Entry{{QuestionEN: "q", AnswerEN: string(rune('0' + version))}}, tok), nil
	}
	s := NewStore(load, nil)
	if s.Ready() || s.Current() != nil {
		t.Fatal("new store should not be ready")
	}

	if err := s.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	first := s.Current()
	if !s.Ready() || first.Entries()[0].AnswerEN != "1" {
		t.Fatalf("after first reload: %+v", first)
	}

	fail = true
	err := s.Reload(context.Background())
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if s.Current() != first {
		t.Error("failed reload must keep the previous snapshot")
	}
	if !errors.Is(s.LastError(), ErrSourceNotFound) {
		t.Errorf("LastError = %v", s.LastError())
	}

	fail = false
	if err := s.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.Current() == first || s.Current().Entries()[0].AnswerEN != "2" {
		t.Error("successful reload should swap the snapshot")
	}
	if s.LastError() != nil {
		t.Errorf("LastError after success = %v", s.LastError())
	}
}

func TestStore_InitialFailureNotReady(t *testing.T) {
	s := NewStore(func(ctx context.Context) (*Corpus, error) {
		return nil, &LoadError{Source: "x", Kind: ErrMalformedSource}
	}, nil)
	if err := s.Reload(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if s.Ready() {
		t.Error("store must not be ready after a failed initial load")
	}
}

func TestStore_ConcurrentReadersDuringReload(t *testing.T) {
	var mu sync.Mutex
	n := 0
	s := NewStore(func(ctx context.Context) (*Corpus, error) {
		mu.Lock()
		n++
		mu.Unlock()
		return Build([]models.Entry{{QuestionEN: "q", AnswerEN: "a"}}, &countingTokenizer{calls: map[models.Language]int{}}), nil
	}, nil)
	if err := s.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				c := s.Current()
				if c == nil || c.Len() != 1 || len(c.Partition(models.English)) != 1 {
					t.Error("reader saw an inconsistent snapshot")
					return
				}
			}
		}()
	}
	for i := 0; i < 10; i++ {
		if err := s.Reload(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	wg.Wait()
	if n != 11 {
		t.Errorf("loads = %d, want 11", n)
	}
}
