package game

import (
	"context"

	"github.com/charmbracelet/log"
)

// supervisor starts child tasks in order and stops them in strict reverse
// order, waiting for each to fully finish before signalling the next. Each
// child gets its own context so that shutdown ordering holds even when the
// whole game is cancelled at once.
type supervisor struct {
	logger   *log.Logger
	children []*child
}

type child struct {
	name   string
	cancel context.CancelFunc
	done   chan struct{}
}

func newSupervisor(logger *log.Logger) *supervisor {
	return &supervisor{logger: logger.WithPrefix("supervisor")}
}

// Start launches a child task. Tasks observe cancellation only through the
// context the supervisor hands them.
func (s *supervisor) Start(name string, run func(context.Context) error) {
	ctx, cancel := context.WithCancel(context.Background())
	c := &child{name: name, cancel: cancel, done: make(chan struct{})}
	s.children = append(s.children, c)

	s.logger.Debug("Starting task", "task", name)
	go func() {
		defer close(c.done)
		if err := run(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("Task failed", "task", name, "error", err)
		}
	}()
}

// Stop cancels and joins every child, last started first.
func (s *supervisor) Stop() {
	for i := len(s.children) - 1; i >= 0; i-- {
		c := s.children[i]
		c.cancel()
		<-c.done
		s.logger.Debug("Task stopped", "task", c.name)
	}
	s.children = nil
}
