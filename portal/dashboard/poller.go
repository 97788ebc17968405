package dashboard

import (
	"context"
	"sync"
	"time"

	"studentportal/portal/model"
)

// DefaultInterval is how often the dashboard refreshes the list.
const DefaultInterval = 5 * time.Second

// Lister fetches the full registration list.
type Lister interface {
	List(ctx context.Context) ([]model.Student, error)
}

// Result is the outcome of one fetch.
type Result struct {
	Students []model.Student
	Err      error
}

// Poller fetches the list immediately and then on every tick. A slow fetch does not delay the next
// tick. Stop cancels in-flight fetches and releases the ticker.
type Poller struct {
	lister   Lister
	interval time.Duration
	results  chan Result
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	start    sync.Once
	stop     sync.Once
}

func NewPoller(lister Lister, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		lister:   lister,
		interval: interval,
		results:  make(chan Result, 1),
	}
}

// Start begins polling and returns the result channel. It is closed after Stop.
func (p *Poller) Start(ctx context.Context) <-chan Result {
	p.start.Do(func() {
		ctx, p.cancel = context.WithCancel(ctx)
		p.wg.Add(1)
		go p.loop(ctx)
	})
	return p.results
}

// Results returns the channel Start returned.
func (p *Poller) Results() <-chan Result {
	return p.results
}

func (p *Poller) loop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.fetch(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetch(ctx)
		}
	}
}

func (p *Poller) fetch(ctx context.Context) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		students, err := p.lister.List(ctx)
		if ctx.Err() != nil {
			return
		}
		select {
		case p.results <- Result{Students: students, Err: err}:
		case <-ctx.Done():
		}
	}()
}

// Stop tears the poller down and waits for outstanding fetches.
func (p *Poller) Stop() {
	p.stop.Do(func() {
		p.start.Do(func() {})
		if p.cancel != nil {
			p.cancel()
		}
		p.wg.Wait()
		close(p.results)
	})
}
