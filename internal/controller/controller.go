// Package controller owns the current lighting overrides and keeps the
// lighting service in sync with them.
//
// Every edit is computed from the latest state under a single lock and
// replaces it whole, then is persisted in the background. Persist results
// only ever touch the status fields, never the state itself.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/phoenixcorp/lightdesk/internal/color"
	"github.com/phoenixcorp/lightdesk/internal/log"
	"github.com/phoenixcorp/lightdesk/internal/overrides"
	"github.com/phoenixcorp/lightdesk/internal/pubsub"
	"github.com/phoenixcorp/lightdesk/internal/resource"
	"github.com/phoenixcorp/lightdesk/internal/tracing"
)

// ErrUnknownPreset is returned by ApplyPreset for names with no preset.
var ErrUnknownPreset = errors.New("unknown preset")

// Transport is how the controller reaches the lighting service. An empty
// status string means the service sent no message.
type Transport interface {
	FetchOverrides(ctx context.Context) (overrides.Payload, error)
	PersistOverrides(ctx context.Context, p overrides.Payload) (string, error)
	Start(ctx context.Context) (string, error)
	Stop(ctx context.Context) (string, error)
	DefineArea(ctx context.Context) (string, error)
}

// cacheInvalidator is implemented by transports that keep fetched overrides.
type cacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// Snapshot is a consistent copy of everything the controller tracks.
type Snapshot struct {
	State   overrides.State
	Loading bool
	// Saving is true while at least one persist is in flight.
	Saving  bool
	Running bool
	Status  string
	// Revision increments every time State is replaced.
	Revision uint64
}

// Controller is safe for concurrent use.
type Controller struct {
	transport Transport
	baseCtx   context.Context

	mu       sync.Mutex
	state    overrides.State
	loading  bool
	inFlight int
	running  bool
	status   string
	revision uint64
	// persistErr collects persist failures until the next Flush.
	persistErr error

	broker   *pubsub.Broker[Snapshot]
	persists sync.WaitGroup
}

// Option configures a Controller.
type Option func(*Controller)

// WithContext sets the context background persists run under. Cancelling
// it aborts persists still in flight.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		c.baseCtx = ctx
	}
}

// WithState seeds the controller with s instead of the defaults.
func WithState(s overrides.State) Option {
	return func(c *Controller) {
		c.state = s.Clone()
	}
}

// New creates a controller holding the default overrides, marked as loading.
func New(t Transport, opts ...Option) *Controller {
	c := &Controller{
		transport: t,
		baseCtx:   context.Background(),
		state:     overrides.Defaults(),
		loading:   true,
		status:    StatusLoading,
		broker:    pubsub.NewBroker[Snapshot](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current state and flags.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// State returns a copy of the current overrides.
func (c *Controller) State() overrides.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Subscribe returns a channel receiving a Snapshot after every change.
// The channel closes when ctx is done or the controller is closed.
func (c *Controller) Subscribe(ctx context.Context) <-chan pubsub.Event[Snapshot] {
	return c.broker.Subscribe(ctx)
}

// Listener returns a Bubble Tea subscription that skips to the newest snapshot.
func (c *Controller) Listener(ctx context.Context) *pubsub.ContinuousListener[Snapshot] {
	return pubsub.NewLatestListener(ctx, c.broker)
}

// Wait blocks until every persist started so far has completed.
func (c *Controller) Wait() {
	c.persists.Wait()
}

// Flush waits for in-flight persists and returns the failures seen since the
// previous Flush, joined. Command-line callers use it to report save errors
// the fire-and-forget path only shows as status.
func (c *Controller) Flush() error {
	c.Wait()
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.persistErr
	c.persistErr = nil
	return err
}

// Close waits for in-flight persists and closes all subscriptions.
func (c *Controller) Close() {
	c.Wait()
	c.broker.Close()
}

// Load fetches the stored overrides and replaces the state with them.
// On failure the previous state is kept; the error is returned so callers
// can report it, the controller itself stays usable.
func (c *Controller) Load(ctx context.Context) error {
	ctx, span := tracing.StartInternalSpan(ctx, "load")

	c.mu.Lock()
	c.loading = true
	c.publishLocked(pubsub.StatusEvent)
	c.mu.Unlock()

	p, err := c.transport.FetchOverrides(ctx)
	tracing.EndSpan(span, err)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		log.ErrorErr(log.CatSync, "Failed to load overrides", err)
		c.status = StatusLoadFailed
		c.publishLocked(pubsub.StatusEvent)
		return fmt.Errorf("loading overrides: %w", err)
	}

	c.state = overrides.Normalize(p)
	c.revision++
	c.status = StatusLoaded
	log.Info(log.CatSync, "Overrides loaded", "revision", c.revision)
	c.publishLocked(pubsub.LoadedEvent)
	return nil
}

// Reload is Load past any copy of the overrides the transport has cached.
func (c *Controller) Reload(ctx context.Context) error {
	if inv, ok := c.transport.(cacheInvalidator); ok {
		inv.Invalidate(ctx)
	}
	return c.Load(ctx)
}

// ApplyEdit replaces the state with mutator(current) and persists the result
// in the background. It returns the new state. A mutator result with
// non-canonical colors or missing resource keys is dropped and the current
// state is returned.
func (c *Controller) ApplyEdit(mutator overrides.Mutator) overrides.State {
	next, _ := c.edit(mutator, "", false)
	return next
}

// SetColor parses input and sets one top-level color. It reports false, and
// edits nothing, when input is not a color. Setting the current value again
// is accepted but not persisted.
func (c *Controller) SetColor(field overrides.ColorField, input string) (overrides.State, bool) {
	parsed, ok := color.Parse(input)
	if !ok {
		log.Debug(log.CatSync, "Rejected color input", "field", field, "input", input)
		return c.State(), false
	}
	next, _ := c.edit(overrides.WithColor(field, parsed), "", true)
	return next, true
}

// SetResourceColor parses input and sets the color of one resource type.
// Unknown types and unparseable input are rejected.
func (c *Controller) SetResourceColor(t resource.Type, input string) (overrides.State, bool) {
	parsed, ok := color.Parse(input)
	if !ok || !t.Valid() {
		log.Debug(log.CatSync, "Rejected resource color input", "resource", t, "input", input)
		return c.State(), false
	}
	next, _ := c.edit(overrides.WithResourceColor(t, parsed), "", true)
	return next, true
}

// SetZone moves one indicator bar.
func (c *Controller) SetZone(zone overrides.Zone, r overrides.Range) overrides.State {
	next, _ := c.edit(overrides.WithZone(zone, r), "", true)
	return next
}

// Replace normalizes p and applies it as a single edit.
func (c *Controller) Replace(p overrides.Payload) overrides.State {
	return c.ApplyEdit(overrides.Replace(p))
}

// ResetToDefaults restores every color and keeps the six ranges.
func (c *Controller) ResetToDefaults() overrides.State {
	next, _ := c.edit(overrides.ResetColors, StatusReset, false)
	return next
}

// ApplyPreset sets every color from the named preset.
func (c *Controller) ApplyPreset(name string) (overrides.State, error) {
	preset, ok := overrides.LookupPreset(name)
	if !ok {
		return c.State(), fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	next, _ := c.edit(preset.Apply, "", false)
	return next, nil
}

// edit is the single read-compute-replace path. status, when set, replaces
// the status line together with the state. With skipUnchanged an edit that
// produces an equal state is dropped and reported as not applied.
func (c *Controller) edit(mutator overrides.Mutator, status string, skipUnchanged bool) (overrides.State, bool) {
	next, revision, applied := c.commit(mutator, status, skipUnchanged)
	if !applied {
		return next, false
	}

	log.Debug(log.CatSync, "Applied edit", "revision", revision)
	go c.persist(next.Clone(), revision)
	return next, true
}

// commit runs mutator and stores its result under c.mu. A result that breaks
// the State invariants is rejected and leaves state and revision unchanged.
func (c *Controller) commit(mutator overrides.Mutator, status string, skipUnchanged bool) (overrides.State, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.state
	// The mutator may keep its argument; store a copy it cannot reach.
	next := mutator(current.Clone()).Clone()
	if err := next.Validate(); err != nil {
		log.ErrorErr(log.CatSync, "Rejected edit with invalid result", err, "revision", c.revision)
		return current.Clone(), c.revision, false
	}
	if skipUnchanged && next.Equal(current) {
		return current.Clone(), c.revision, false
	}

	c.state = next
	c.revision++
	c.inFlight++
	if status != "" {
		c.status = status
	}
	c.publishLocked(pubsub.EditedEvent)
	c.persists.Add(1)
	return next.Clone(), c.revision, true
}

// persist sends s to the service. Completions arrive in any order; each one
// only updates the status line and the in-flight count.
func (c *Controller) persist(s overrides.State, revision uint64) {
	defer c.persists.Done()

	ctx, span := tracing.StartInternalSpan(c.baseCtx, "persist",
		attribute.Int64(tracing.AttrRevision, int64(revision)))
	message, err := c.transport.PersistOverrides(ctx, overrides.Serialize(s))
	tracing.EndSpan(span, err)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--

	switch {
	case err != nil:
		log.ErrorErr(log.CatSync, "Failed to persist overrides", err, "revision", revision)
		c.status = StatusSaveFailed
		c.persistErr = errors.Join(c.persistErr, fmt.Errorf("saving revision %d: %w", revision, err))
	case message != "":
		c.status = message
	default:
		c.status = StatusSaved
	}
	c.publishLocked(pubsub.StatusEvent)
}

// Start asks the service to start the lighting runtime.
func (c *Controller) Start(ctx context.Context) error {
	return c.runAction(ctx, "start", c.transport.Start, StatusStarting, StatusStarted, StatusStartFailed,
		func() { c.running = true })
}

// Stop asks the service to stop the lighting runtime.
func (c *Controller) Stop(ctx context.Context) error {
	return c.runAction(ctx, "stop", c.transport.Stop, StatusStopping, StatusStopped, StatusStopFailed,
		func() { c.running = false })
}

// DefineArea asks the service to prompt for the OCR capture area.
func (c *Controller) DefineArea(ctx context.Context) error {
	return c.runAction(ctx, "define_area", c.transport.DefineArea, StatusDefiningArea, StatusAreaDefined, StatusDefineAreaFailed,
		nil)
}

// runAction sets the pending status, calls fn, then sets the service message
// or the fallback. onSuccess runs under the lock.
func (c *Controller) runAction(
	ctx context.Context,
	op string,
	fn func(context.Context) (string, error),
	pending, success, failure string,
	onSuccess func(),
) error {
	ctx, span := tracing.StartInternalSpan(ctx, op)

	c.setStatus(pending)
	message, err := fn(ctx)
	tracing.EndSpan(span, err)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		log.ErrorErr(log.CatSync, "Runtime action failed", err, "op", op)
		c.status = failure
		c.publishLocked(pubsub.StatusEvent)
		return fmt.Errorf("%s: %w", op, err)
	}

	if message == "" {
		message = success
	}
	c.status = message
	if onSuccess != nil {
		onSuccess()
	}
	c.publishLocked(pubsub.StatusEvent)
	return nil
}

func (c *Controller) setStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
	c.publishLocked(pubsub.StatusEvent)
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:    c.state.Clone(),
		Loading:  c.loading,
		Saving:   c.inFlight > 0,
		Running:  c.running,
		Status:   c.status,
		Revision: c.revision,
	}
}

// publishLocked never blocks; the broker drops the oldest queued snapshot
// for slow subscribers.
func (c *Controller) publishLocked(eventType pubsub.EventType) {
	c.broker.Publish(eventType, c.snapshotLocked())
}
