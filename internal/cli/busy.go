package cli

import (
	"context"
	"sync"

	"github.com/charmbracelet/huh/spinner"
)

// Spinner shows a terminal spinner while a resource.Busy tracker is busy.
// Pass OnChange as the tracker's change hook. A disabled Spinner does
// nothing, which is what non-terminal runs use.
type Spinner struct {
	title   string
	enabled bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSpinner(title string, enabled bool) *Spinner {
	return &Spinner{title: title, enabled: enabled}
}

// OnChange starts the spinner on busy and stops it on idle.
func (s *Spinner) OnChange(busy bool) {
	if !s.enabled {
		return
	}
	if busy {
		s.start()
	} else {
		s.Stop()
	}
}

func (s *Spinner) start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel, s.done = cancel, done
	go func() {
		defer close(done)
		_ = spinner.New().Title(s.title).Context(ctx).Run()
	}()
}

// Stop hides the spinner and waits for it to clear the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
