package chartsense

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Option configures a Chart at construction.
type Option func(*Chart)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Chart) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithAccessors overrides the chart-level x and y accessors from Config.
func WithAccessors(x, y Accessor) Option {
	return func(c *Chart) {
		c.x, c.y = x, y
	}
}

// WithData sets the initial dataset.
func WithData(data []any) Option {
	return func(c *Chart) {
		c.initialData = data
	}
}

// WithSensors replaces the default sensor set.
func WithSensors(sensors ...Sensor) Option {
	return func(c *Chart) {
		c.sensors = sensors
		c.customSensors = true
	}
}

// WithBehaviors sets the behavior set.
func WithBehaviors(behaviors ...Behavior) Option {
	return func(c *Chart) {
		c.behaviors = behaviors
	}
}

// running is one instantiated sensor or behavior.
type running struct {
	cleanup  func()
	teardown func()
}

// Chart owns the state store, the event bus, and the lifecycle of sensors and
// behaviors. It is the single entry point for host input.
//
// Chart is not safe for concurrent use; hosts call it from their UI thread.
type Chart struct {
	id     string
	cfg    Config
	store  *Store[State]
	bus    *eventBus
	logger *zap.Logger
	debug  bool

	x, y        Accessor
	initialData []any
	configs     map[string][]SeriesConfig

	sensors       []Sensor
	customSensors bool
	behaviors     []Behavior
	active        []running
	mounted       bool
	reconciling   bool

	stats debugStats
}

// NewChart creates an unmounted chart.
func NewChart(cfg Config, opts ...Option) *Chart {
	c := &Chart{
		id:      uuid.NewString(),
		cfg:     cfg,
		bus:     newEventBus(),
		logger:  zap.NewNop(),
		x:       ByKey(cfg.X),
		y:       ByKey(cfg.Y),
		configs: make(map[string][]SeriesConfig),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("chart", c.id))
	c.debug = cfg.Debug
	if !c.customSensors {
		c.sensors = DefaultSensors(cfg.Type)
	}

	st := &State{
		Dimensions:   NewDimensions(cfg.Width, cfg.Height, cfg.Margins),
		Data:         c.initialData,
		Series:       map[string][]*Series{},
		Interactions: map[string]*InteractionPayload{},
	}
	c.relayout(st)
	c.store = NewStore(st)
	return c
}

// ID returns the chart's instance id.
func (c *Chart) ID() string { return c.id }

// Config returns the chart's current config.
func (c *Chart) Config() Config { return c.cfg }

// Store returns the underlying store for host subscriptions. All mutation
// should go through Chart methods.
func (c *Chart) Store() *Store[State] { return c.store }

// State returns the current state.
func (c *Chart) State() *State { return c.store.State() }

// Subscribe registers fn for every state change.
func (c *Chart) Subscribe(fn func(next, prev *State)) (unsubscribe func()) {
	return c.store.Subscribe(fn)
}

// Interaction returns the payload on channel, or nil.
func (c *Chart) Interaction(channel string) *InteractionPayload {
	return c.store.State().Interactions[channel]
}

// Mounted reports whether surfaces are attached.
func (c *Chart) Mounted() bool { return c.mounted }

// Running reports how many sensors and behaviors are instantiated.
func (c *Chart) Running() int { return len(c.active) }

// ListenerCount returns the number of event listeners currently attached.
func (c *Chart) ListenerCount() int { return c.bus.count() }

func (c *Chart) context() ChartContext {
	return ChartContext{State: c.store.State(), Type: c.cfg.Type, X: c.x, Y: c.y}
}

func (c *Chart) defaults(st *State) hydrateDefaults {
	return hydrateDefaults{data: st.Data, x: c.x, y: c.y, typ: c.cfg.Type}
}

// relayout recomputes scales and status on a state copy that is not yet
// published.
func (c *Chart) relayout(st *State) {
	st.Scales = BuildScales(ScaleInput{
		Data:    st.Data,
		Width:   st.Dimensions.Width,
		Height:  st.Dimensions.Height,
		Margins: st.Dimensions.Margins,
		X:       c.x,
		Y:       c.y,
		Type:    c.cfg.Type,
	})
	if st.Status == StatusError {
		return
	}
	st.Status = StatusIdle
	if st.Dimensions.Valid() && (len(st.Data) > 0 || c.cfg.AllowEmptyData) {
		st.Status = StatusReady
	}
}

// layoutUpdate publishes a state produced by fn after recomputing layout, then
// starts or stops sensors and behaviors to match.
func (c *Chart) layoutUpdate(fn func(next *State)) {
	c.store.SetState(func(prev *State) *State {
		next := *prev
		fn(&next)
		c.relayout(&next)
		return &next
	})
	c.reconcile()
}

// Resize is the host's resize notification.
func (c *Chart) Resize(width, height float64) {
	c.cfg.Width, c.cfg.Height = width, height
	c.layoutUpdate(func(next *State) {
		next.Dimensions = NewDimensions(width, height, next.Dimensions.Margins)
	})
}

// SetMargins changes the plot margins.
func (c *Chart) SetMargins(m Margins) {
	c.cfg.Margins = m
	c.layoutUpdate(func(next *State) {
		next.Dimensions = NewDimensions(next.Dimensions.Width, next.Dimensions.Height, m)
	})
}

// SetData replaces the shared dataset. Series that use the shared dataset are
// re-hydrated and get fresh strategies.
func (c *Chart) SetData(data []any) {
	c.layoutUpdate(func(next *State) {
		next.Data = data
		*next = *rehydrateAll(next, c.configs, c.defaults(next))
	})
}

// SetType changes the chart type. Series are re-hydrated and, unless custom
// sensors were set, the default sensor set for the new type replaces the old
// one.
func (c *Chart) SetType(t ChartType) {
	c.cfg.Type = t
	if !c.customSensors {
		c.sensors = DefaultSensors(t)
	}
	c.stop()
	c.layoutUpdate(func(next *State) {
		*next = *rehydrateAll(next, c.configs, c.defaults(next))
	})
}

// SetSensors replaces the active sensor set, tearing down the previous one
// first.
func (c *Chart) SetSensors(sensors ...Sensor) {
	c.stop()
	c.sensors = sensors
	c.customSensors = true
	c.reconcile()
}

// SetBehaviors replaces the active behavior set, tearing down the previous one
// first.
func (c *Chart) SetBehaviors(behaviors ...Behavior) {
	c.stop()
	c.behaviors = behaviors
	c.reconcile()
}

// RegisterSeries hydrates configs under registryID, replacing any previous
// registration with that id.
func (c *Chart) RegisterSeries(registryID string, configs []SeriesConfig) {
	c.configs[registryID] = configs
	c.store.SetState(func(prev *State) *State {
		return registerSeries(prev, registryID, configs, c.defaults(prev))
	})
	if c.debug {
		c.debugCheckStrategies()
	}
}

// UnregisterSeries removes registryID. Unknown ids leave the state untouched.
func (c *Chart) UnregisterSeries(registryID string) {
	delete(c.configs, registryID)
	c.store.SetState(func(prev *State) *State {
		return unregisterSeries(prev, registryID)
	})
}

// UpsertInteraction sets channel's payload.
func (c *Chart) UpsertInteraction(channel string, payload *InteractionPayload) {
	c.store.SetState(func(prev *State) *State {
		if prev.Interactions[channel] == payload {
			return prev
		}
		return withInteraction(prev, channel, payload)
	})
}

// RemoveInteraction clears channel. Clearing an inactive channel is a no-op.
func (c *Chart) RemoveInteraction(channel string) {
	c.store.SetState(func(prev *State) *State {
		return withoutInteraction(prev, channel)
	})
}

// Mount attaches the host's surfaces. Mounting an already mounted chart
// replaces the surfaces and restarts sensors and behaviors.
func (c *Chart) Mount(root, plot Surface) {
	if root == nil {
		panic("chartsense: Mount requires a root surface")
	}
	if c.mounted {
		c.stop()
	}
	c.store.Patch(func(next *State) {
		next.Elements = Elements{Root: root, Plot: plot}
	})
	c.mounted = true
	c.logger.Debug("mounted", zap.Stringer("status", c.store.State().Status))
	c.reconcile()
}

// Unmount tears down every sensor and behavior and detaches surfaces.
func (c *Chart) Unmount() {
	if !c.mounted {
		return
	}
	c.stop()
	c.mounted = false
	c.store.Patch(func(next *State) {
		next.Elements = Elements{}
		if len(next.Interactions) > 0 {
			next.Interactions = map[string]*InteractionPayload{}
		}
	})
	c.logger.Debug("unmounted")
}

// Fail enters the error state and stops sensors and behaviors. It is the hook
// point for collaborators that detect unrecoverable configuration.
func (c *Chart) Fail(err error) {
	c.logger.Error("chart failed", zap.Error(err))
	c.stop()
	c.store.Patch(func(next *State) {
		next.Status = StatusError
		next.Err = err
	})
}

// Recover leaves the error state and re-derives status from current state.
func (c *Chart) Recover() {
	c.layoutUpdate(func(next *State) {
		next.Status = StatusIdle
		next.Err = nil
	})
}

func (c *Chart) ready() bool {
	return c.mounted && c.store.State().Status == StatusReady
}

// reconcile starts the pipelines when the chart is mounted and ready and
// stops them otherwise.
func (c *Chart) reconcile() {
	if c.reconciling {
		return
	}
	c.reconciling = true
	defer func() { c.reconciling = false }()

	want := c.ready()
	switch {
	case want && len(c.active) == 0:
		c.start()
	case !want && len(c.active) > 0:
		c.stop()
	}
}

func (c *Chart) start() {
	for _, s := range c.sensors {
		ctx := newSensorContext(c)
		cleanup := s(ctx)
		c.active = append(c.active, running{cleanup: cleanup, teardown: ctx.teardown})
	}
	for _, b := range c.behaviors {
		ctx := newBehaviorContext(c)
		cleanup := b(ctx)
		c.active = append(c.active, running{cleanup: cleanup, teardown: ctx.teardown})
	}
	c.logger.Debug("pipelines started",
		zap.Int("sensors", len(c.sensors)), zap.Int("behaviors", len(c.behaviors)))
}

// stop runs every cleanup in reverse start order before tearing the contexts
// down.
func (c *Chart) stop() {
	if len(c.active) == 0 {
		return
	}
	active := c.active
	c.active = nil
	for i := len(active) - 1; i >= 0; i-- {
		if active[i].cleanup != nil {
			active[i].cleanup()
		}
		active[i].teardown()
	}
	c.logger.Debug("pipelines stopped", zap.Int("count", len(active)))
}

// RawPointer is a pointer event in container (screen) coordinates as the host
// received it.
type RawPointer struct {
	ClientX, ClientY float64
	Touch            bool
	Modifiers        KeyModifiers
	// Native is the host's hit-test result under the pointer, if any.
	Native any
}

func (c *Chart) mustBeMounted(op string) {
	if !c.mounted {
		panic("chartsense: " + op + " called on an unmounted chart")
	}
}

// normalize converts a raw pointer to root-relative and plot-relative
// coordinates.
func (c *Chart) normalize(raw RawPointer) PointerPosition {
	st := c.store.State()
	origin := st.Elements.Root.Bounds()
	cx, cy := raw.ClientX-origin.X, raw.ClientY-origin.Y
	m := st.Dimensions.Margins
	return PointerPosition{
		X: cx - m.Left, Y: cy - m.Top,
		ContainerX: cx, ContainerY: cy,
		Touch: raw.Touch,
	}
}

// PointerMove forwards a pointer move. Events arriving while the chart is not
// ready are dropped.
func (c *Chart) PointerMove(raw RawPointer) {
	c.mustBeMounted("PointerMove")
	if !c.ready() {
		return
	}
	c.dispatch(ChartEvent{
		Name:      EventPointerMove,
		Pointer:   c.normalize(raw),
		Modifiers: raw.Modifiers,
		Native:    raw.Native,
	})
}

// PointerDown forwards a pointer press.
func (c *Chart) PointerDown(raw RawPointer) {
	c.mustBeMounted("PointerDown")
	if !c.ready() {
		return
	}
	c.dispatch(ChartEvent{
		Name:      EventPointerDown,
		Pointer:   c.normalize(raw),
		Modifiers: raw.Modifiers,
		Native:    raw.Native,
	})
}

// PointerLeave forwards the pointer leaving the chart.
func (c *Chart) PointerLeave() {
	c.mustBeMounted("PointerLeave")
	if !c.ready() {
		return
	}
	c.dispatch(ChartEvent{Name: EventPointerLeave})
}

// KeyDown forwards a navigation key.
func (c *Chart) KeyDown(key Key, mods KeyModifiers) {
	c.mustBeMounted("KeyDown")
	if !c.ready() {
		return
	}
	c.dispatch(ChartEvent{Name: EventKeyDown, Key: key, Modifiers: mods})
}

func (c *Chart) dispatch(ev ChartEvent) {
	if !c.debug {
		c.bus.emit(ev)
		return
	}
	t0 := time.Now()
	c.bus.emit(ev)
	c.stats.record(ev.Name, time.Since(t0), c.store.State())
	c.debugLog(ev)
}
