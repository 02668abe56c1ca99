package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fanpass/api"
	"fanpass/entities"
)

// MockEvents answers List the way the remote service would: it applies
// the price range server-side and returns what is left.
type MockEvents struct {
	events  []entities.Event
	listErr error
	gotCrit *entities.FilterCriteria
}

func (m *MockEvents) List(ctx context.Context, criteria *entities.FilterCriteria) ([]entities.Event, error) {
	m.gotCrit = criteria
	if m.listErr != nil {
		return nil, m.listErr
	}
	if criteria == nil {
		return m.events, nil
	}
	matched := []entities.Event{}
	for _, ev := range m.events {
		if ev.Price >= criteria.MinPrice && ev.Price <= criteria.MaxPrice {
			matched = append(matched, ev)
		}
	}
	return matched, nil
}

func priceFixture() []entities.Event {
	prices := []float64{10, 20, 45, 80, 100, 150}
	events := make([]entities.Event, 0, len(prices))
	for i, price := range prices {
		events = append(events, entities.Event{
			EventId:        fmt.Sprintf("e%d", i+1),
			SportsCategory: entities.CategoryCricket,
			Venue:          "Eden Gardens",
			Price:          price,
			Date:           fmt.Sprintf("September %d, 2026", 10+i),
		})
	}
	return events
}

func TestCatalogStoreFetchWithCriteria(t *testing.T) {
	events := &MockEvents{events: priceFixture()}
	c := NewCatalogStore(events, testLogger())

	criteria := entities.DefaultFilterCriteria()
	criteria.MinPrice = 20
	criteria.MaxPrice = 100
	criteria.SortBy = entities.SortByPrice

	err := c.Fetch(context.Background(), &criteria)

	require.NoError(t, err)
	state := c.State()
	assert.Len(t, state.Events, 4)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
	require.NotNil(t, events.gotCrit)
	assert.Equal(t, 20.0, events.gotCrit.MinPrice)
}

func TestCatalogStoreFetchReplacesWholesale(t *testing.T) {
	events := &MockEvents{events: priceFixture()}
	c := NewCatalogStore(events, testLogger())

	require.NoError(t, c.Fetch(context.Background(), nil))
	assert.Len(t, c.State().Events, 6)

	events.events = priceFixture()[:2]
	require.NoError(t, c.Fetch(context.Background(), nil))

	// no merging with the previous list
	assert.Len(t, c.State().Events, 2)
}

func TestCatalogStoreFetchFailureKeepsEvents(t *testing.T) {
	events := &MockEvents{events: priceFixture()}
	c := NewCatalogStore(events, testLogger())
	require.NoError(t, c.Fetch(context.Background(), nil))

	events.listErr = &api.FetchError{Message: "Failed to fetch events"}
	err := c.Fetch(context.Background(), nil)

	require.Error(t, err)
	state := c.State()
	assert.Len(t, state.Events, 6)
	assert.False(t, state.Loading)
	assert.Equal(t, err.Error(), state.Err)

	c.ClearError()
	assert.Empty(t, c.State().Err)
}

func TestCatalogStoreSnapshotIsDetached(t *testing.T) {
	fixture := priceFixture()
	fixture[0].SportsCategory = entities.CategoryFootball
	fixture[0].Football = &entities.FootballMatch{HomeTeam: "Real Madrid", AwayTeam: "Barcelona"}
	events := &MockEvents{events: fixture}
	c := NewCatalogStore(events, testLogger())
	require.NoError(t, c.Fetch(context.Background(), nil))

	snapshot := c.State()
	snapshot.Events[0].Venue = "scribbled over"
	snapshot.Events[0].Football.HomeTeam = "scribbled over"

	state := c.State()
	assert.Equal(t, "Eden Gardens", state.Events[0].Venue)
	assert.Equal(t, "Real Madrid", state.Events[0].Football.HomeTeam)
}
