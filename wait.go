package cc2500

import (
	"fmt"
	"runtime"
	"time"
)

// ReadyWaiter blocks after chip select is asserted until the CC2500 pulls
// its SO line low.
type ReadyWaiter interface {
	WaitReady(ready Pin) error
}

// SpinWait polls the ready line in a tight loop with no bound. A chip that
// never answers blocks the caller forever.
type SpinWait struct{}

func (SpinWait) WaitReady(ready Pin) error {
	for ready.Read() == High {
	}
	return nil
}

// YieldWait polls without a bound but yields the processor between reads,
// which lets other goroutines run on single-core targets.
type YieldWait struct{}

func (YieldWait) WaitReady(ready Pin) error {
	for ready.Read() == High {
		runtime.Gosched()
	}
	return nil
}

// TimeoutWait polls every PollInterval and gives up with
// ErrDeviceNotResponding once Timeout has elapsed.
type TimeoutWait struct {
	Timeout time.Duration
	// PollInterval defaults to 10µs.
	PollInterval time.Duration
}

func (w TimeoutWait) WaitReady(ready Pin) error {
	interval := w.PollInterval
	if interval <= 0 {
		interval = 10 * time.Microsecond
	}
	deadline := time.Now().Add(w.Timeout)
	for ready.Read() == High {
		if !time.Now().Before(deadline) {
			return fmt.Errorf("%w: %w: ready line still high after %s", ErrPkg, ErrDeviceNotResponding, w.Timeout)
		}
		time.Sleep(interval)
	}
	return nil
}
