package voice

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Result is one recognition event. Final results carry only the newly
// finalized increment, never the full accumulated transcript.
type Result struct {
	Text  string
	Final bool
}

// Recognizer is a live speech-to-text stream. The returned channel
// closes when the underlying platform ends the recognition session,
// which continuous recognizers do spontaneously after a while.
type Recognizer interface {
	Start(ctx context.Context) (<-chan Result, error)
	Supported() bool
}

// ErrUnsupported means speech capture is not available on this
// deployment. The UI treats it as a capability flag, not a failure.
var ErrUnsupported = errors.New("speech recognition not supported")

const (
	stateIdle      = "idle"
	stateListening = "listening"
)

// Capturer bridges a Recognizer into the session's answer buffer. It
// restarts recognition transparently when the platform auto-stops, and
// guards against a late end event reactivating a session the caller
// explicitly stopped.
type Capturer struct {
	mu      sync.Mutex
	log     *zap.Logger
	rec     Recognizer
	onFinal func(text string)

	state  string
	gen    int
	cancel context.CancelFunc
}

// NewCapturer registers onFinal as the delivery callback for finalized
// transcript increments.
func NewCapturer(rec Recognizer, onFinal func(string), log *zap.Logger) *Capturer {
	return &Capturer{
		log:     log,
		rec:     rec,
		onFinal: onFinal,
		state:   stateIdle,
	}
}

// Supported reports whether speech capture can be offered at all.
func (c *Capturer) Supported() bool {
	return c.rec != nil && c.rec.Supported()
}

func (c *Capturer) State() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start begins continuous recognition. Calling Start while already
// listening is a no-op.
func (c *Capturer) Start() error {
	c.mu.Lock()
	if c.state == stateListening {
		c.mu.Unlock()
		return nil
	}
	if !c.Supported() {
		c.mu.Unlock()
		return ErrUnsupported
	}
	c.state = stateListening
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	go c.run(gen)
	return nil
}

// Stop deactivates capture. The generation counter is bumped before
// cancellation so a stream end arriving after Stop cannot restart
// recognition.
func (c *Capturer) Stop() {
	c.mu.Lock()
	if c.state != stateListening {
		c.mu.Unlock()
		return
	}
	c.state = stateIdle
	c.gen++
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (c *Capturer) run(gen int) {
	for {
		ctx, cancel := context.WithCancel(context.Background())

		c.mu.Lock()
		if c.state != stateListening || c.gen != gen {
			c.mu.Unlock()
			cancel()
			return
		}
		c.cancel = cancel
		c.mu.Unlock()

		results, err := c.rec.Start(ctx)
		if err != nil {
			c.log.Warn("Speech recognition failed to start", zap.Error(err))
			c.mu.Lock()
			if c.gen == gen {
				c.state = stateIdle
				c.cancel = nil
			}
			c.mu.Unlock()
			cancel()
			return
		}

		for res := range results {
			if !res.Final {
				continue
			}
			if text := strings.TrimSpace(res.Text); text != "" {
				c.onFinal(text)
			}
		}
		cancel()

		c.mu.Lock()
		active := c.state == stateListening && c.gen == gen
		c.mu.Unlock()
		if !active {
			return
		}
		// Platform auto-stop with capture still active: restart the
		// stream. Brief non-final gaps are acceptable here.
		c.log.Debug("Recognition stream ended while listening, restarting")
	}
}
