package notify

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
)

type recordingSender struct {
	mu      sync.Mutex
	sent    []int64
	failFor map[int64]error
}

func (s *recordingSender) Send(_ context.Context, chatID int64, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failFor[chatID]; err != nil {
		return err
	}
	s.sent = append(s.sent, chatID)
	return nil
}

func TestNotifyReachesEveryOperator(t *testing.T) {
	s := &recordingSender{}
	n := New(s, []int64{10, 20, 30})

	n.Notify(context.Background(), "🆕 Новая заявка №1!")

	sort.Slice(s.sent, func(i, j int) bool { return s.sent[i] < s.sent[j] })
	if len(s.sent) != 3 || s.sent[0] != 10 || s.sent[1] != 20 || s.sent[2] != 30 {
		t.Fatalf("sent = %v, want all three operators", s.sent)
	}
}

func TestNotifyOneFailureDoesNotBlockOthers(t *testing.T) {
	s := &recordingSender{failFor: map[int64]error{20: errors.New("blocked the bot")}}
	n := New(s, []int64{10, 20, 30})

	n.Notify(context.Background(), "🆕 Новая заявка №2!")

	sort.Slice(s.sent, func(i, j int) bool { return s.sent[i] < s.sent[j] })
	if len(s.sent) != 2 || s.sent[0] != 10 || s.sent[1] != 30 {
		t.Fatalf("sent = %v, want 10 and 30 despite 20 failing", s.sent)
	}
}

func TestNotifyNoOperators(t *testing.T) {
	s := &recordingSender{}
	New(s, nil).Notify(context.Background(), "ничего")
	if len(s.sent) != 0 {
		t.Fatalf("sent = %v, want none", s.sent)
	}
}
