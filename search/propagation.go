package search

import (
	"context"
	"log"
	"time"

	"github.com/check-scam/api-go/models"
)

// Writer is the outbound slice of Client the propagator needs.
type Writer interface {
	IndexWarning(ctx context.Context, w *models.Warning) error
	DeleteWarning(ctx context.Context, id uint) error
	LogSearch(ctx context.Context, doc SearchLogDoc) error
}

type taskKind int

const (
	taskIndex taskKind = iota
	taskDelete
	taskLog
)

type task struct {
	kind      taskKind
	warning   models.Warning
	warningID uint
	logDoc    SearchLogDoc
}

// Propagator is the outbound queue that carries store writes to the search
// index. Delivery is best-effort, at most once: a full queue drops the task
// and a failed write is logged, not retried. Requests never wait on it.
type Propagator struct {
	writer Writer
	tasks  chan task
	done   chan struct{}
}

func NewPropagator(writer Writer, buffer int) *Propagator {
	p := &Propagator{
		writer: writer,
		tasks:  make(chan task, buffer),
		done:   make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *Propagator) run() {
	defer close(p.done)
	for t := range p.tasks {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		var err error
		switch t.kind {
		case taskIndex:
			err = p.writer.IndexWarning(ctx, &t.warning)
		case taskDelete:
			err = p.writer.DeleteWarning(ctx, t.warningID)
		case taskLog:
			err = p.writer.LogSearch(ctx, t.logDoc)
		}
		cancel()
		if err != nil {
			log.Printf("index propagation: %v", err)
		}
	}
}

func (p *Propagator) enqueue(t task) {
	select {
	case p.tasks <- t:
	default:
		log.Printf("index propagation: queue full, dropping task")
	}
}

// IndexWarning queues the warning's current state for (re)indexing.
func (p *Propagator) IndexWarning(w models.Warning) {
	p.enqueue(task{kind: taskIndex, warning: w})
}

// DeleteWarning queues removal of the warning's index document.
func (p *Propagator) DeleteWarning(id uint) {
	p.enqueue(task{kind: taskDelete, warningID: id})
}

// LogSearch queues a search analytics event.
func (p *Propagator) LogSearch(doc SearchLogDoc) {
	p.enqueue(task{kind: taskLog, logDoc: doc})
}

// Close drains queued tasks and stops the worker.
func (p *Propagator) Close() {
	close(p.tasks)
	<-p.done
}
