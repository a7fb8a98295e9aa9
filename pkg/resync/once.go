package resync

import (
	"sync"
	"sync/atomic"
)

// Once is similar to sync.Once but can be reset.
// Mainly useful to recreate singletons between unit tests.
type Once struct {
	done uint32
	m    sync.Mutex
}

// Do calls the function f if and only if Do is being called for the
// first time since the creation or the last call to Reset.
func (o *Once) Do(f func()) {
	if atomic.LoadUint32(&o.done) == 0 {
		o.doSlow(f)
	}
}

func (o *Once) doSlow(f func()) {
	o.m.Lock()
	defer o.m.Unlock()
	if o.done == 0 {
		defer atomic.StoreUint32(&o.done, 1)
		f()
	}
}

// Reset makes the next call to Do execute its function again.
func (o *Once) Reset() {
	o.m.Lock()
	defer o.m.Unlock()
	atomic.StoreUint32(&o.done, 0)
}
