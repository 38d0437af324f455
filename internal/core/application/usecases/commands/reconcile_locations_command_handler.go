package commands

import (
	"context"
	"log/slog"
	"strconv"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ReconcileLocationsCommandHandler repairs drift between a location's
// currentCount and the products that actually reference it. Every repaired
// location is logged and audited as a system change. A location whose real
// occupancy exceeds its capacity is reported and left alone.
type ReconcileLocationsCommandHandler struct {
	uowFactory LocationUoWFactory
	logger     *slog.Logger
}

func NewReconcileLocationsCommandHandler(uowFactory LocationUoWFactory, logger *slog.Logger) ReconcileLocationsCommandHandler {
	return ReconcileLocationsCommandHandler{uowFactory: uowFactory, logger: logger}
}

// Handle returns the number of repaired locations.
func (h ReconcileLocationsCommandHandler) Handle(ctx context.Context, cmd ReconcileLocationsCommand) (repaired int, err error) {
	defer func() { err = errs.Internalize(err) }()

	if err = cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	locations := uow.LocationRepository()
	all, err := locations.List(ctx)
	if err != nil {
		return 0, err
	}
	counts, err := uow.ProductRepository().CountByLocation(ctx)
	if err != nil {
		return 0, err
	}

	system := kernel.SystemActor()
	var entries []audit.Entry
	for _, listed := range all {
		if listed.CurrentCount() == counts[listed.ID()] {
			continue
		}

		l, lockErr := locations.GetForUpdate(ctx, listed.ID())
		if lockErr != nil {
			return 0, lockErr
		}
		actual := counts[l.ID()]
		prev, recountErr := l.Recount(actual)
		if recountErr != nil {
			h.logger.ErrorContext(ctx, "location over capacity",
				"location_id", l.ID().String(), "code", l.Code(), "capacity", l.Capacity(), "actual", actual)
			continue
		}
		if prev == actual {
			continue
		}

		h.logger.WarnContext(ctx, "location count drift repaired",
			"location_id", l.ID().String(), "code", l.Code(), "recorded", prev, "actual", actual)

		if err = locations.Update(ctx, l); err != nil {
			return 0, err
		}
		entry, entryErr := audit.NewEntry(event.EntityLocation, l.ID(), strconv.Itoa(prev), strconv.Itoa(actual), system,
			map[string]string{"op": "reconcile", "code": l.Code()})
		if entryErr != nil {
			return 0, entryErr
		}
		entries = append(entries, entry)
		repaired++
	}

	if len(entries) > 0 {
		if err = uow.AuditRepository().Append(ctx, entries...); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return repaired, nil
}
