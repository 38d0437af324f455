package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newApplyHandler(f *fixture) commands.ApplyProductTransitionCommandHandler {
	return commands.NewApplyProductTransitionCommandHandler(uowFactory{f.uow}, f.events, f.cache, discardLogger())
}

func TestApplyProductTransitionCommandHandler_Handle(t *testing.T) {
	staff := mustActor(kernel.RoleStaff)

	t.Run("should store product and reserve its location", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		p := mustProduct(kernel.NewUUID(), product.Inspection, nil)
		shelf := mustLocation(2, 1)
		shelfID := shelf.ID()
		cmd, err := commands.NewApplyProductTransitionCommand(p.ID(), product.Storage, staff, &shelfID)
		require.NoError(t, err)

		f.expectTx(ctx, true)
		f.products.On("Get", ctx, p.ID()).Return(p, nil).Once()
		f.groups.On("FindOpenByProduct", ctx, p.ID()).Return(nil, nil).Once()
		f.locations.On("GetForUpdate", ctx, shelfID).Return(shelf, nil).Once()
		f.locations.On("Update", ctx, shelf).Return(nil).Once()
		f.products.On("Update", ctx, p).Return(nil).Once()
		f.audits.On("Append", ctx, mock.MatchedBy(func(entries []audit.Entry) bool {
			return len(entries) == 2 && entries[0].EntityType() == "product" && entries[1].EntityType() == "location"
		})).Return(nil).Once()
		f.events.On("Dispatch", ctx, mock.MatchedBy(func(events []event.Event) bool {
			return len(events) == 1 && events[0].Kind == event.ProductStored
		})).Once()

		err = newApplyHandler(f).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, product.Storage, p.Status())
		assert.Equal(t, 2, shelf.CurrentCount())
		f.assertExpectations(t)
	})

	t.Run("should refuse storage without location and write nothing", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		p := mustProduct(kernel.NewUUID(), product.Inspection, nil)
		cmd, err := commands.NewApplyProductTransitionCommand(p.ID(), product.Storage, staff, nil)
		require.NoError(t, err)

		f.expectTx(ctx, false)
		f.products.On("Get", ctx, p.ID()).Return(p, nil).Once()
		f.groups.On("FindOpenByProduct", ctx, p.ID()).Return(nil, nil).Once()

		err = newApplyHandler(f).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "location is required")
		f.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("should refuse full location and leave product in place", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		p := mustProduct(kernel.NewUUID(), product.Inspection, nil)
		shelf := mustLocation(1, 1)
		shelfID := shelf.ID()
		cmd, err := commands.NewApplyProductTransitionCommand(p.ID(), product.Storage, staff, &shelfID)
		require.NoError(t, err)

		f.expectTx(ctx, false)
		f.products.On("Get", ctx, p.ID()).Return(p, nil).Once()
		f.groups.On("FindOpenByProduct", ctx, p.ID()).Return(nil, nil).Once()
		f.locations.On("GetForUpdate", ctx, shelfID).Return(shelf, nil).Once()

		err = newApplyHandler(f).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrCapacityExceeded)
		assert.Equal(t, 1, shelf.CurrentCount())
		f.locations.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("should release slot when listed product sells", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		shelf := mustLocation(3, 2)
		shelfID := shelf.ID()
		p := mustProduct(kernel.NewUUID(), product.Listed, &shelfID)
		cmd, err := commands.NewApplyProductTransitionCommand(p.ID(), product.Sold, kernel.SystemActor(), nil)
		require.NoError(t, err)

		f.expectTx(ctx, true)
		f.products.On("Get", ctx, p.ID()).Return(p, nil).Once()
		f.groups.On("FindOpenByProduct", ctx, p.ID()).Return(nil, nil).Once()
		f.locations.On("GetForUpdate", ctx, shelfID).Return(shelf, nil).Once()
		f.locations.On("Update", ctx, shelf).Return(nil).Once()
		f.products.On("Update", ctx, p).Return(nil).Once()
		f.audits.On("Append", ctx, mock.Anything).Return(nil).Once()
		f.events.On("Dispatch", ctx, mock.Anything).Once()

		err = newApplyHandler(f).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Nil(t, p.LocationID())
		assert.Equal(t, 1, shelf.CurrentCount())
		f.assertExpectations(t)
	})

	t.Run("should keep release underflow from failing the sale", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		shelf := mustLocation(3, 0)
		shelfID := shelf.ID()
		p := mustProduct(kernel.NewUUID(), product.Listed, &shelfID)
		cmd, err := commands.NewApplyProductTransitionCommand(p.ID(), product.Sold, staff, nil)
		require.NoError(t, err)

		f.expectTx(ctx, true)
		f.products.On("Get", ctx, p.ID()).Return(p, nil).Once()
		f.groups.On("FindOpenByProduct", ctx, p.ID()).Return(nil, nil).Once()
		f.locations.On("GetForUpdate", ctx, shelfID).Return(shelf, nil).Once()
		f.products.On("Update", ctx, p).Return(nil).Once()
		f.audits.On("Append", ctx, mock.Anything).Return(nil).Once()
		f.events.On("Dispatch", ctx, mock.Anything).Once()

		err = newApplyHandler(f).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Zero(t, shelf.CurrentCount())
		f.locations.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("should refuse shipment edge for group member", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		p := mustProduct(kernel.NewUUID(), product.Picking, nil)
		group := mustGroup(shipment.Workstation, "", p)
		cmd, err := commands.NewApplyProductTransitionCommand(p.ID(), product.Packed, staff, nil)
		require.NoError(t, err)

		f.expectTx(ctx, false)
		f.products.On("Get", ctx, p.ID()).Return(p, nil).Once()
		f.groups.On("FindOpenByProduct", ctx, p.ID()).Return(group, nil).Once()

		err = newApplyHandler(f).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Contains(t, err.Error(), group.ID().String())
		f.assertExpectations(t)
	})

	t.Run("should refuse shipment edges for product without group", func(t *testing.T) {
		steps := []struct{ from, to product.Status }{
			{product.Sold, product.Picking},
			{product.Picking, product.Packed},
			{product.Packed, product.ReadyForPickup},
			{product.ReadyForPickup, product.Shipped},
		}
		for _, step := range steps {
			t.Run(step.to.String(), func(t *testing.T) {
				ctx := t.Context()
				f := newFixture()
				p := mustProduct(kernel.NewUUID(), step.from, nil)
				cmd, err := commands.NewApplyProductTransitionCommand(p.ID(), step.to, staff, nil)
				require.NoError(t, err)

				f.expectTx(ctx, false)
				f.products.On("Get", ctx, p.ID()).Return(p, nil).Once()
				f.groups.On("FindOpenByProduct", ctx, p.ID()).Return(nil, nil).Once()

				err = newApplyHandler(f).Handle(ctx, cmd)

				require.ErrorIs(t, err, errs.ErrInvalidTransition)
				assert.Contains(t, err.Error(), "shipment stages require a shipment group")
				assert.Equal(t, step.from, p.Status())
				f.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				f.events.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
				f.assertExpectations(t)
			})
		}
	})

	t.Run("should split member off group before return", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		owner := kernel.NewUUID()
		a, b := mustProduct(owner, product.Packed, nil), mustProduct(owner, product.Packed, nil)
		group := mustGroup(shipment.Packed, "", a, b)
		cmd, err := commands.NewApplyProductTransitionCommand(a.ID(), product.Returned, staff, nil)
		require.NoError(t, err)

		f.expectTx(ctx, true)
		f.products.On("Get", ctx, a.ID()).Return(a, nil).Once()
		f.groups.On("FindOpenByProduct", ctx, a.ID()).Return(group, nil).Once()
		f.groups.On("Update", ctx, group).Return(nil).Once()
		f.audits.On("Append", ctx, mock.MatchedBy(func(entries []audit.Entry) bool {
			return len(entries) == 2 && entries[0].ToStatus() == "sold"
		})).Return(nil).Once()
		f.products.On("Update", ctx, a).Return(nil).Once()
		f.audits.On("Append", ctx, mock.MatchedBy(func(entries []audit.Entry) bool {
			return len(entries) == 1 && entries[0].FromStatus() == "sold" && entries[0].ToStatus() == "returned"
		})).Return(nil).Once()
		f.cache.On("Invalidate", ctx, group.ID()).Return(nil).Once()
		f.events.On("Dispatch", ctx, mock.MatchedBy(func(events []event.Event) bool {
			return len(events) == 2 && events[0].Kind == event.ShipmentSplit && events[1].Kind == event.ProductReturned
		})).Once()

		err = newApplyHandler(f).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, product.Returned, a.Status())
		assert.False(t, group.HasMember(a.ID()))
		assert.Equal(t, shipment.KindSingle, group.Kind())
		f.assertExpectations(t)
	})
}

func TestNewApplyProductTransitionCommand(t *testing.T) {
	t.Run("should copy location id", func(t *testing.T) {
		loc := kernel.NewUUID()
		cmd, err := commands.NewApplyProductTransitionCommand(kernel.NewUUID(), product.Storage, mustActor(kernel.RoleStaff), &loc)
		require.NoError(t, err)

		loc = kernel.NewUUID()

		assert.False(t, cmd.LocationID().IsEqual(loc))
	})

	t.Run("should reject unknown target", func(t *testing.T) {
		_, err := commands.NewApplyProductTransitionCommand(kernel.NewUUID(), product.Unknown, mustActor(kernel.RoleStaff), nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
