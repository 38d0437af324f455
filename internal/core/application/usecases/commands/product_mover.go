package commands

import (
	"context"
	"log/slog"
	"slices"

	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/location"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

type productRepos interface {
	ProductRepoFactory
	LocationRepoFactory
	AuditRepoFactory
}

// productMover applies a single product transition inside the caller's
// transaction: lifecycle, storage occupancy, product row and audit entries.
type productMover struct {
	lifecycle services.ProductLifecycle
	ledger    services.LocationLedger
	logger    *slog.Logger
}

func newProductMover(logger *slog.Logger) productMover {
	return productMover{
		lifecycle: services.NewProductLifecycle(),
		ledger:    services.NewLocationLedger(),
		logger:    logger,
	}
}

func (m productMover) move(ctx context.Context, repos productRepos, p *product.Product, tr services.ProductTransition) (services.Outcome, error) {
	change, out, err := m.lifecycle.Apply(p, tr)
	if err != nil {
		return services.Outcome{}, err
	}

	entries, err := m.settle(ctx, repos.LocationRepository(), p.ID(), change, tr.Actor)
	if err != nil {
		return services.Outcome{}, err
	}
	out.Entries = append(out.Entries, entries...)

	if err = repos.ProductRepository().Update(ctx, p); err != nil {
		return services.Outcome{}, err
	}
	if err = repos.AuditRepository().Append(ctx, out.Entries...); err != nil {
		return services.Outcome{}, err
	}

	return out, nil
}

// settle releases the old slot and reserves the new one. Both rows are locked
// in id order so two relocations in opposite directions cannot deadlock.
func (m productMover) settle(
	ctx context.Context,
	locations ports.LocationRepository,
	productID kernel.UUID,
	change product.Change,
	actor kernel.Actor,
) ([]audit.Entry, error) {
	if !change.LocationChanged() {
		return nil, nil
	}

	locked := make(map[kernel.UUID]*location.Location, 2)
	for _, id := range lockOrder(change.FromLocation, change.ToLocation) {
		l, err := locations.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = l
	}

	var entries []audit.Entry
	if change.FromLocation != nil {
		l := locked[*change.FromLocation]
		entry, released, err := m.ledger.Release(l, productID, actor)
		if err != nil {
			return nil, err
		}
		if !released {
			m.logger.WarnContext(ctx, "location count already zero on release",
				"location_id", l.ID().String(), "product_id", productID.String())
		} else {
			if err = locations.Update(ctx, l); err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
	}

	if change.ToLocation != nil {
		l := locked[*change.ToLocation]
		entry, err := m.ledger.Reserve(l, productID, actor)
		if err != nil {
			return nil, err
		}
		if err = locations.Update(ctx, l); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func lockOrder(ids ...*kernel.UUID) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if id != nil && !slices.ContainsFunc(out, id.IsEqual) {
			out = append(out, *id)
		}
	}
	slices.SortFunc(out, func(a, b kernel.UUID) int {
		switch {
		case a.String() < b.String():
			return -1
		case a.String() > b.String():
			return 1
		default:
			return 0
		}
	})
	return out
}
