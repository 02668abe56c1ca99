package store

import (
	"context"
	"log/slog"
	"sync"

	"fanpass/api"
	"fanpass/entities"
)

// CatalogState is the cached event list plus the tri-state every async
// operation exposes. Events survive a failed refresh untouched.
type CatalogState struct {
	Events  []entities.Event
	Loading bool
	Err     string
}

type catalogEvent interface {
	isCatalogEvent()
}

type fetchStarted struct{}
type fetchSucceeded struct{ events []entities.Event }
type fetchFailed struct{ message string }
type catalogErrorCleared struct{}

func (fetchStarted) isCatalogEvent()        {}
func (fetchSucceeded) isCatalogEvent()      {}
func (fetchFailed) isCatalogEvent()         {}
func (catalogErrorCleared) isCatalogEvent() {}

// reduceCatalog is the pure catalog transition function. A successful
// fetch replaces the event list wholesale; there is no incremental merge.
func reduceCatalog(s CatalogState, ev catalogEvent) CatalogState {
	switch ev := ev.(type) {
	case fetchStarted:
		s.Loading = true
		s.Err = ""
	case fetchSucceeded:
		s.Events = ev.events
		s.Loading = false
		s.Err = ""
	case fetchFailed:
		s.Loading = false
		s.Err = ev.message
	case catalogErrorCleared:
		s.Err = ""
	}
	return s
}

// CatalogStore is the effect shell around reduceCatalog.
type CatalogStore struct {
	mu     sync.Mutex
	state  CatalogState
	events api.Events
	log    *slog.Logger
}

func NewCatalogStore(events api.Events, log *slog.Logger) *CatalogStore {
	return &CatalogStore{
		events: events,
		log:    log,
		state:  CatalogState{Events: []entities.Event{}},
	}
}

func (c *CatalogStore) dispatch(ev catalogEvent) {
	c.mu.Lock()
	c.state = reduceCatalog(c.state, ev)
	c.mu.Unlock()
}

// State returns a snapshot; events are cloned so a concurrent refresh
// never mutates what a reader is iterating, sub-objects included.
func (c *CatalogStore) State() CatalogState {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.state
	state.Events = make([]entities.Event, len(c.state.Events))
	for i, event := range c.state.Events {
		state.Events[i] = event.Clone()
	}
	return state
}

// Fetch refreshes the catalog with the given criteria (nil means no
// filtering). On failure the previous events stay in place and the error
// lands in state for the rendering surface to show.
func (c *CatalogStore) Fetch(ctx context.Context, criteria *entities.FilterCriteria) error {
	c.dispatch(fetchStarted{})
	events, err := c.events.List(ctx, criteria)
	if err != nil {
		c.log.Warn("event fetch failed", slog.Any("error", err))
		c.dispatch(fetchFailed{message: err.Error()})
		return err
	}
	c.dispatch(fetchSucceeded{events: events})
	return nil
}

func (c *CatalogStore) ClearError() {
	c.dispatch(catalogErrorCleared{})
}
