package api

import (
	"context"
	"errors"
	"net/http"

	"fanpass/constant"
	"fanpass/entities"
	"fanpass/gateway"
)

// Events lists the catalog, optionally narrowed by filter criteria.
type Events interface {
	List(ctx context.Context, criteria *entities.FilterCriteria) ([]entities.Event, error)
}

type eventsEnvelope struct {
	Status  bool             `json:"status"`
	Message string           `json:"message"`
	Length  int              `json:"length"`
	Events  []entities.Event `json:"events"`
}

type EventsClient struct {
	gw *gateway.Gateway
}

func NewEventsClient(gw *gateway.Gateway) *EventsClient {
	return &EventsClient{gw: gw}
}

func (c *EventsClient) List(ctx context.Context, criteria *entities.FilterCriteria) ([]entities.Event, error) {
	path := constant.EVENTS_PATH
	if criteria != nil {
		if err := criteria.Validate(); err != nil {
			return nil, &FetchError{Message: err.Error()}
		}
		path += "?" + criteria.Encode()
	}
	var resp eventsEnvelope
	if err := c.gw.Send(ctx, http.MethodGet, path, nil, &resp, "Failed to fetch events"); err != nil {
		var te *gateway.TransportError
		if errors.As(err, &te) {
			return nil, &FetchError{Message: te.Message}
		}
		return nil, &FetchError{Message: err.Error()}
	}
	if resp.Events == nil {
		resp.Events = []entities.Event{}
	}
	return resp.Events, nil
}
