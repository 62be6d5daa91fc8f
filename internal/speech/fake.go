package speech

import "sync"

// Fake is a scripted Recognizer. Tests push events with Emit and inspect
// start/stop counts.
type Fake struct {
	mu       sync.Mutex
	events   chan Event
	startErr []error
	starts   int
	stops    int
	closed   bool
}

// NewFake returns a fake recognizer with a buffered event stream.
func NewFake() *Fake {
	return &Fake{events: make(chan Event, 64)}
}

// FailNextStart makes the next Start calls return the given errors, in order.
func (f *Fake) FailNextStart(errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.startErr = append(f.startErr, errs...)
}

func (f *Fake) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.startErr) > 0 {
		err := f.startErr[0]
		f.startErr = f.startErr[1:]
		if err != nil {
			return err
		}
	}
	f.starts++
	return nil
}

// Stop counts the call and queues the session end a real recognizer sends.
func (f *Fake) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	select {
	case f.events <- End():
	default:
	}
	return nil
}

func (f *Fake) Events() <-chan Event { return f.events }

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Emit queues an event on the stream.
func (f *Fake) Emit(ev Event) {
	f.events <- ev
}

// Starts counts successful Start calls.
func (f *Fake) Starts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts
}

// Stops counts Stop calls.
func (f *Fake) Stops() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops
}

// Closed reports whether Close was called.
func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
