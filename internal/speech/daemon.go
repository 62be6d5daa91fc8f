package speech

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/jwulff/medscribe/internal/daemon"
	"github.com/rs/zerolog"
)

// DaemonRecognizer delegates recognition to a local speech daemon. Commands
// go over one connection, the event subscription over another.
type DaemonRecognizer struct {
	socketPath string
	locale     string
	log        zerolog.Logger

	mu       sync.Mutex
	cmd      *daemon.Client
	ev       *daemon.Client
	events   chan Event
	done     chan struct{}
	stopOnce sync.Once
}

// NewDaemonRecognizer returns a recognizer for the daemon at socketPath.
// Connections are opened on the first Start.
func NewDaemonRecognizer(socketPath, locale string, log zerolog.Logger) *DaemonRecognizer {
	return &DaemonRecognizer{
		socketPath: socketPath,
		locale:     locale,
		log:        log,
		events:     make(chan Event, 32),
		done:       make(chan struct{}),
	}
}

// DetectDaemon reports the daemon capability: available when its socket
// exists, unavailable otherwise.
func DetectDaemon(socketPath, locale string, log zerolog.Logger) Capability {
	if _, err := os.Stat(socketPath); err != nil {
		return Unavailable(fmt.Sprintf("speech daemon not running (no socket at %s)", socketPath))
	}
	return Available(NewDaemonRecognizer(socketPath, locale, log))
}

// daemonLocale converts a BCP 47 tag like en-US to the daemon's en_US form.
func daemonLocale(locale string) string {
	return strings.ReplaceAll(locale, "-", "_")
}

func (r *DaemonRecognizer) connect() error {
	if r.cmd != nil {
		return nil
	}

	cmd, err := daemon.Connect(r.socketPath)
	if err != nil {
		return err
	}
	ev, err := daemon.Connect(r.socketPath)
	if err != nil {
		cmd.Close()
		return err
	}
	if _, err := ev.Do(daemon.Command{
		Cmd:    daemon.CmdSubscribe,
		Events: []string{daemon.EventPartial, daemon.EventSegment, daemon.EventStatus, daemon.EventError},
	}); err != nil {
		cmd.Close()
		ev.Close()
		return err
	}

	r.cmd, r.ev = cmd, ev
	go r.pump(ev)
	return nil
}

// disconnect drops both connections so the next Start redials.
func (r *DaemonRecognizer) disconnect() {
	if r.cmd != nil {
		r.cmd.Close()
		r.cmd = nil
	}
	if r.ev != nil {
		r.ev.Close()
		r.ev = nil
	}
}

func (r *DaemonRecognizer) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.connect(); err != nil {
		return err
	}
	if _, err := r.cmd.Do(daemon.Command{Cmd: daemon.CmdStart, Locale: daemonLocale(r.locale)}); err != nil {
		return err
	}
	r.log.Debug().Str("locale", r.locale).Msg("daemon recording started")
	return nil
}

func (r *DaemonRecognizer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd == nil {
		return nil
	}
	_, err := r.cmd.Do(daemon.Command{Cmd: daemon.CmdStop})
	return err
}

func (r *DaemonRecognizer) Events() <-chan Event { return r.events }

func (r *DaemonRecognizer) Close() error {
	r.stopOnce.Do(func() { close(r.done) })
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disconnect()
	return nil
}

// pump forwards daemon events until the connection drops or the recognizer
// is closed.
func (r *DaemonRecognizer) pump(client *daemon.Client) {
	for {
		raw, err := client.ReadEvent()
		if err != nil {
			r.mu.Lock()
			current := r.ev == client
			if current {
				r.disconnect()
			}
			r.mu.Unlock()
			if current {
				r.emit(Failure("lost connection to speech daemon: " + err.Error()))
			}
			return
		}

		ev, ok := translate(raw)
		if !ok {
			continue
		}
		if !r.emit(ev) {
			return
		}
	}
}

func (r *DaemonRecognizer) emit(ev Event) bool {
	select {
	case r.events <- ev:
		return true
	case <-r.done:
		return false
	}
}

// translate maps a daemon event onto a recognizer event. Transient errors
// and running-status updates are not forwarded.
func translate(raw daemon.Event) (Event, bool) {
	switch raw.Event {
	case daemon.EventPartial:
		return Interim(raw.Text), true
	case daemon.EventSegment:
		return Final(raw.Text), true
	case daemon.EventStatus:
		if raw.Recording != nil && !*raw.Recording {
			return End(), true
		}
	case daemon.EventError:
		if raw.Transient != nil && *raw.Transient {
			return Event{}, false
		}
		return Failure(raw.Message), true
	}
	return Event{}, false
}
