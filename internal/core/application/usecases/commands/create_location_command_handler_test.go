package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/location"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateLocationCommandHandler_Handle(t *testing.T) {
	t.Run("should add empty location", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		cmd, err := commands.NewCreateLocationCommand(kernel.NewUUID(), "B-07", 12, mustActor(kernel.RoleAdmin))
		require.NoError(t, err)

		f.expectTx(ctx, true)
		f.locations.On("Add", ctx, mock.MatchedBy(func(l *location.Location) bool {
			return l.Code() == "B-07" && l.Capacity() == 12 && l.CurrentCount() == 0
		})).Return(nil).Once()
		f.audits.On("Append", ctx, mock.MatchedBy(func(entries []audit.Entry) bool {
			return len(entries) == 1 && entries[0].Context()["op"] == "create"
		})).Return(nil).Once()

		err = commands.NewCreateLocationCommandHandler(locationUoWFactory{f.uow}).Handle(ctx, cmd)

		require.NoError(t, err)
		f.assertExpectations(t)
	})

	t.Run("should refuse sellers", func(t *testing.T) {
		f := newFixture()
		cmd, err := commands.NewCreateLocationCommand(kernel.NewUUID(), "B-07", 12, mustActor(kernel.RoleSeller))
		require.NoError(t, err)

		err = commands.NewCreateLocationCommandHandler(locationUoWFactory{f.uow}).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("should reject zero capacity", func(t *testing.T) {
		_, err := commands.NewCreateLocationCommand(kernel.NewUUID(), "B-07", 0, mustActor(kernel.RoleStaff))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
