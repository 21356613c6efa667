package trace

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fjglira/GoE2E-StepContext/pkg/scope"
)

// Recorder is a scope.Observer writing events to a Store. One Recorder may
// observe many scopes, including scopes running concurrently.
type Recorder struct {
	store *Store
	log   logrus.FieldLogger

	mu        sync.Mutex
	scenarios map[uint64]int64 // scope id -> scenario row
	err       error
}

// NewRecorder creates a Recorder writing to store.
func NewRecorder(store *Store, log logrus.FieldLogger) *Recorder {
	return &Recorder{
		store:     store,
		log:       log,
		scenarios: make(map[uint64]int64),
	}
}

// Observe implements scope.Observer. Only a scenario-start event opens a
// scenario row; other events for an unknown scope are dropped. Write
// failures are logged and the first one is kept for Err; they never
// interrupt the scenario.
func (r *Recorder) Observe(e scope.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.scenarios[e.ScopeID]
	if e.Kind == scope.ScenarioStarted {
		var err error
		id, err = r.store.BeginScenario(e.Scenario)
		if err != nil {
			r.fail(err)
			return
		}
		r.scenarios[e.ScopeID] = id
	} else if !ok {
		r.log.WithField("event", e.Kind).Debug("Dropping step trace event outside a started scenario")
		return
	}

	if err := r.store.Append(id, e); err != nil {
		r.fail(err)
	}
	if e.Kind == scope.ScenarioEnded {
		delete(r.scenarios, e.ScopeID)
	}
}

// Err returns the first write failure, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Recorder) fail(err error) {
	r.log.WithError(err).Error("Failed to record step trace")
	if r.err == nil {
		r.err = err
	}
}
