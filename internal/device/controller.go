package device

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/errors"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/freshness"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/logger"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/power"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/protocol"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/render"
	"github.com/mohsinyousufi/wio-pc-monitor/internal/transport"
)

const (
	// statusInterval is the status line repaint cadence, independent of
	// data arrival.
	statusInterval = time.Second

	readChunkSize = 64
)

// Controller owns every piece of mutable device state: the current
// snapshot, the per-transport line assemblers, the draw cache (inside the
// render engine) and the power state machine. All mutation happens on the
// control loop; nothing here needs a lock.
type Controller struct {
	clock      clockwork.Clock
	transports []transport.Transport
	assemblers []*protocol.Assembler
	engine     *render.Engine
	tracker    *freshness.Tracker
	power      *power.Manager
	current    protocol.Snapshot
	lastStatus time.Time
	buf        [readChunkSize]byte
}

// NewController wires the engine and transports together and paints the
// initial static layout. Transport order is drain order: when two
// transports hold complete lines in the same tick, the later one wins the
// current snapshot.
func NewController(clock clockwork.Clock, engine *render.Engine, transports ...transport.Transport) *Controller {
	assemblers := make([]*protocol.Assembler, len(transports))
	for i := range assemblers {
		assemblers[i] = protocol.NewAssembler()
	}

	c := &Controller{
		clock:      clock,
		transports: transports,
		assemblers: assemblers,
		engine:     engine,
		tracker:    freshness.NewTracker(clock, freshness.DefaultThreshold),
		power:      power.NewManager(engine, power.SleepTimeout),
	}

	c.engine.Layout()
	c.engine.DrawStatus(c.tracker.Status(), c.bluetoothAvailable())
	c.lastStatus = clock.Now()

	return c
}

// Run drives the control loop at the poll interval until ctx is canceled.
func (c *Controller) Run(ctx context.Context, pollInterval time.Duration) error {
	if pollInterval <= 0 {
		return errors.New().New(errors.ErrInvalidInterval).WithData(pollInterval)
	}

	ticker := c.clock.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			c.Tick()
		}
	}
}

// Tick performs one loop iteration: drain every transport fully in order,
// then run the time-based checks. Bounded work, no blocking calls; every
// iteration is itself the retry.
func (c *Controller) Tick() {
	for i, tr := range c.transports {
		c.drain(i, tr)
	}

	c.power.Tick(c.tracker.SinceLastReceipt())

	now := c.clock.Now()
	if c.power.State() == power.On && now.Sub(c.lastStatus) >= statusInterval {
		c.engine.DrawStatus(c.tracker.Status(), c.bluetoothAvailable())
		c.lastStatus = now
	}
}

// drain consumes all bytes the transport has buffered before returning, so
// one channel's complete record never waits on another's cadence.
func (c *Controller) drain(i int, tr transport.Transport) {
	for {
		n, err := tr.TryRead(c.buf[:])
		if err != nil {
			logger.Debug().Err(err).Str("transport", tr.Name()).Msg("Read failed")
			return
		}
		if n == 0 {
			return
		}
		for _, b := range c.buf[:n] {
			if line, ok := c.assemblers[i].Feed(b); ok {
				c.handleLine(line)
			}
		}
	}
}

// handleLine parses one assembled line. Rejected records keep the previous
// snapshot and trigger no drawing at all: garbage on the wire must never
// disturb the panel.
func (c *Controller) handleLine(line string) {
	snapshot, err := protocol.Parse(line)
	if err != nil {
		logger.Debug().Str("line", line).Msg("Rejected record")
		return
	}

	c.current = snapshot
	c.tracker.MarkReceived()

	if c.power.OnSnapshot() {
		// Wake path: static relayout, then an unconditional repaint with a
		// freshly reset cache.
		c.engine.Layout()
		c.engine.RenderFull(snapshot)
	} else {
		c.engine.RenderDelta(snapshot)
	}
	c.engine.DrawStatus(c.tracker.Status(), c.bluetoothAvailable())
	c.lastStatus = c.clock.Now()

	c.echo(snapshot)
}

// echo re-serializes the snapshot outward on every transport that can
// carry it, regardless of which one it arrived on.
func (c *Controller) echo(s protocol.Snapshot) {
	payload := s.Echo()
	for _, tr := range c.transports {
		if !tr.Available() {
			continue
		}
		if err := tr.Notify(payload); err != nil {
			logger.Debug().Err(err).Str("transport", tr.Name()).Msg("Notify failed")
		}
	}
}

func (c *Controller) bluetoothAvailable() bool {
	for _, tr := range c.transports {
		if tr.Name() != "serial" && tr.Available() {
			return true
		}
	}
	return false
}

// Snapshot returns the current telemetry snapshot.
func (c *Controller) Snapshot() protocol.Snapshot {
	return c.current
}

// PowerState returns the display power state.
func (c *Controller) PowerState() power.State {
	return c.power.State()
}

// Status returns the derived freshness status.
func (c *Controller) Status() freshness.Status {
	return c.tracker.Status()
}

// Close shuts down all transports.
func (c *Controller) Close() {
	for _, tr := range c.transports {
		if err := tr.Close(); err != nil {
			logger.Warn().Err(err).Str("transport", tr.Name()).Msg("Close failed")
		}
	}
}
