package payment

import (
	"context"

	"github.com/irsalhamdi/hotel-booking/core/fault"
)

// OptionService is the one capability every kind-specific service exposes:
// materializing the concrete detail record for a generic payment method id.
type OptionService interface {
	Kind() Kind
	OptionByMethod(ctx context.Context, methodID string) (Option, error)
}

// Resolver dispatches a payment kind to the service owning that kind's
// option records.
type Resolver struct {
	services map[Kind]OptionService
}

func NewResolver(services ...OptionService) *Resolver {
	r := &Resolver{services: make(map[Kind]OptionService, len(services))}
	for _, svc := range services {
		r.services[svc.Kind()] = svc
	}
	return r
}

// Resolve returns the service registered for kind, or
// fault.UnsupportedPayment for anything unregistered.
func (r *Resolver) Resolve(kind Kind) (OptionService, error) {
	svc, ok := r.services[kind]
	if !ok {
		return nil, fault.Errorf(fault.UnsupportedPayment, "no service registered for payment kind[%s]", kind)
	}
	return svc, nil
}
