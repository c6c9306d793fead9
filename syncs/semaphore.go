package syncs

import "context"

type Semaphore chan bool

func NewSemaphore(n int) Semaphore {
	return make(chan bool, n)
}

func (s Semaphore) Acquire() {
	s <- true
}

func (s Semaphore) Release() {
	<-s
}

// AcquireContext acquires unless ctx is done first.
func (s Semaphore) AcquireContext(ctx context.Context) error {
	if ctx.Err() != nil {
		return context.Cause(ctx)
	}
	select {
	case s <- true:
		return nil
	case <-ctx.Done():
		return context.Cause(ctx)
	}
}
