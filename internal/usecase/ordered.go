package usecase

import (
	"sync"

	"NewsAnalyzer/internal/domain"
)

// orderedEmitter forwards per-article events in slot order. Events of the lowest
// unfinished slot stream through immediately; later slots are buffered until
// every earlier slot has finished.
type orderedEmitter struct {
	mu       sync.Mutex
	emit     Progress
	next     int
	done     []bool
	buffered [][]domain.Event
}

func newOrderedEmitter(n int, emit Progress) *orderedEmitter {
	return &orderedEmitter{
		emit:     emit,
		done:     make([]bool, n),
		buffered: make([][]domain.Event, n),
	}
}

func (o *orderedEmitter) slot(i int) Progress {
	return func(e domain.Event) {
		o.mu.Lock()
		defer o.mu.Unlock()
		if i == o.next {
			o.emit(e)
			return
		}
		o.buffered[i] = append(o.buffered[i], e)
	}
}

func (o *orderedEmitter) finish(i int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.done[i] = true
	for o.next < len(o.done) && o.done[o.next] {
		o.next++
		if o.next < len(o.done) {
			for _, e := range o.buffered[o.next] {
				o.emit(e)
			}
			o.buffered[o.next] = nil
		}
	}
}
