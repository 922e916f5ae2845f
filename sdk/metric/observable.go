package metric

import (
	"sync"

	"github.com/signalcore/otelsdk/attribute"
	"github.com/signalcore/otelsdk/internal/otellog"
)

// ObservableResult accumulates (value, attrs) tuples from one callback
// invocation during collection (§4.5, §9 "fresh ObservableResult per
// callback to isolate state").
type ObservableResult struct {
	mu   sync.Mutex
	obs  []observation
}

type observation struct {
	set   attribute.Set
	value float64
}

// Observe records one (value, attrs) tuple.
func (r *ObservableResult) Observe(value float64, attrs ...attribute.KeyValue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obs = append(r.obs, observation{set: attribute.NewSet(attrs...), value: value})
}

// Callback is a user-registered observation function for an observable
// instrument.
type Callback func(result *ObservableResult)

// Unregister removes a previously registered callback.
type Unregister func()

// observableRegistry tracks callbacks for one observable instrument and
// the prior observed value per attribute set, needed to compute
// monotonic-checked deltas for ObservableCounter (§4.5).
type observableRegistry struct {
	mu        sync.Mutex
	callbacks map[int]Callback
	nextID    int
	prior     map[attribute.Distinct]float64
}

func newObservableRegistry() *observableRegistry {
	return &observableRegistry{callbacks: make(map[int]Callback), prior: make(map[attribute.Distinct]float64)}
}

func (r *observableRegistry) register(cb Callback) Unregister {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.callbacks[id] = cb
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		delete(r.callbacks, id)
		r.mu.Unlock()
	}
}

// collect invokes every registered callback with a fresh ObservableResult,
// isolating one callback's panic from the rest of the collection cycle
// (§9 "detect callback exceptions and log; do not fail the whole
// collection cycle").
func (r *observableRegistry) collect() []observation {
	r.mu.Lock()
	cbs := make([]Callback, 0, len(r.callbacks))
	for _, cb := range r.callbacks {
		cbs = append(cbs, cb)
	}
	r.mu.Unlock()

	var all []observation
	for _, cb := range cbs {
		all = append(all, runCallback(cb)...)
	}
	return all
}

func runCallback(cb Callback) (obs []observation) {
	defer func() {
		if rec := recover(); rec != nil {
			otellog.Errorf("observable instrument callback panicked: %v", rec)
			obs = nil
		}
	}()
	result := &ObservableResult{}
	cb(result)
	return result.obs
}

// counterDelta applies the §4.5 monotonic-checked-delta rule for
// ObservableCounter: if the freshly observed value is less than the prior
// observation, treat it as a reset and use the observed value directly;
// otherwise the delta is observed-prior.
func (r *observableRegistry) counterDelta(set attribute.Set, observed float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := set.Equivalent()
	prior, ok := r.prior[key]
	r.prior[key] = observed
	if !ok || observed < prior {
		return observed
	}
	return observed - prior
}
