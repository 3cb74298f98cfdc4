package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ContinuousListener keeps one subscription alive across Bubble Tea updates.
// Call Listen again from Update after each received event.
type ContinuousListener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
	// latest collapses queued events into the newest one.
	latest bool
}

// NewContinuousListener delivers every event, in order, for the lifetime of ctx.
func NewContinuousListener[T any](ctx context.Context, broker *Broker[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{ctx: ctx, ch: broker.Subscribe(ctx)}
}

// NewLatestListener delivers only the newest queued event. Use it when every
// payload is a full snapshot, so intermediate ones are not worth a redraw.
func NewLatestListener[T any](ctx context.Context, broker *Broker[T]) *ContinuousListener[T] {
	l := NewContinuousListener(ctx, broker)
	l.latest = true
	return l
}

// Listen returns a tea.Cmd that waits for the next event. The command yields
// nil once ctx is done or the broker closed.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	ctx, ch, latest := l.ctx, l.ch, l.latest
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			if latest {
				event = newest(ch, event)
			}
			return event
		}
	}
}

func newest[T any](ch <-chan Event[T], event Event[T]) Event[T] {
	for {
		select {
		case next, ok := <-ch:
			if !ok {
				return event
			}
			event = next
		default:
			return event
		}
	}
}
