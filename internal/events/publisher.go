package events

import (
	"context"
	"errors"

	"paymentapi/internal/domain"
)

// Publisher delivers record status changes to interested parties.
type Publisher interface {
	Publish(ctx context.Context, ev domain.StatusEvent) error
}

// Fanout publishes to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, ev domain.StatusEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.StatusEvent) error {
	return nil
}
