package shipmentrepo_test

import (
	"context"
	"testing"

	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/adapters/out/postgres/shipmentrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type ShipmentGroupRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *shipmentrepo.GormShipmentGroupRepository
	tracker    *MockAggregateTracker
	staff      kernel.Actor
}

func (suite *ShipmentGroupRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database

	suite.staff, err = kernel.NewActor(kernel.NewUUID(), kernel.RoleStaff)
	suite.Require().NoError(err)
}

func (suite *ShipmentGroupRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate(context.Background()))

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = shipmentrepo.NewGormShipmentGroupRepository(suite.database.DB, suite.tracker)
}

func (suite *ShipmentGroupRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *ShipmentGroupRepositoryIntegrationTestSuite) TestAdd_ThenGet_KeepsMemberOrder() {
	ctx := suite.T().Context()
	a, b := kernel.NewUUID(), kernel.NewUUID()
	g := suite.addGroup(ctx, a, b)

	got, err := suite.repository.Get(ctx, g.ID())

	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{a, b}, got.Members())
	suite.Equal(shipment.Workstation, got.Status())
	suite.Equal(shipment.KindBundled, got.Kind())
	suite.False(got.IsLabeled())
}

func (suite *ShipmentGroupRepositoryIntegrationTestSuite) TestAdd_ProductInOpenGroup_ReturnsAlreadyBundled() {
	ctx := suite.T().Context()
	shared := kernel.NewUUID()
	suite.addGroup(ctx, shared)

	second, err := shipment.NewGroup(kernel.NewUUID(), kernel.NewUUID(), shipment.CarrierSagawa, []kernel.UUID{kernel.NewUUID(), shared})
	suite.Require().NoError(err)
	err = suite.repository.Add(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrAlreadyBundled)
	suite.Contains(err.Error(), shared.String())
}

func (suite *ShipmentGroupRepositoryIntegrationTestSuite) TestUpdate_RemovedMember_IsFreed() {
	ctx := suite.T().Context()
	a, b := kernel.NewUUID(), kernel.NewUUID()
	g := suite.addGroup(ctx, a, b)

	suite.Require().NoError(g.RemoveMember(a, suite.staff))
	suite.Require().NoError(suite.repository.Update(ctx, g))

	found, err := suite.repository.FindOpenByProduct(ctx, a)
	suite.Require().NoError(err)
	suite.Nil(found)

	open, err := suite.repository.OpenMemberships(ctx, []kernel.UUID{a, b})
	suite.Require().NoError(err)
	suite.Equal(map[kernel.UUID]kernel.UUID{b: g.ID()}, open)

	got, err := suite.repository.Get(ctx, g.ID())
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{b}, got.Members())
	suite.Equal(shipment.KindSingle, got.Kind())

	suite.addGroup(ctx, a)
}

func (suite *ShipmentGroupRepositoryIntegrationTestSuite) TestUpdate_ShippedGroup_ReleasesMembersButKeepsThem() {
	ctx := suite.T().Context()
	a := kernel.NewUUID()
	g := suite.addGroup(ctx, a)

	_, err := g.Advance(shipment.Packed, suite.staff)
	suite.Require().NoError(err)
	suite.Require().NoError(g.AssignTracking("TRK-100"))
	_, err = g.Advance(shipment.ReadyForPickup, suite.staff)
	suite.Require().NoError(err)
	_, err = g.Advance(shipment.Shipped, suite.staff)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, g))

	found, err := suite.repository.FindOpenByProduct(ctx, a)
	suite.Require().NoError(err)
	suite.Nil(found)

	got, err := suite.repository.Get(ctx, g.ID())
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{a}, got.Members())
	suite.Equal("TRK-100", got.TrackingNumber())
}

func (suite *ShipmentGroupRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConflict() {
	ctx := suite.T().Context()
	g := suite.addGroup(ctx, kernel.NewUUID())

	first, err := suite.repository.Get(ctx, g.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, g.ID())
	suite.Require().NoError(err)

	_, err = first.Advance(shipment.Packed, suite.staff)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	_, err = second.Advance(shipment.Packed, suite.staff)
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *ShipmentGroupRepositoryIntegrationTestSuite) addGroup(ctx context.Context, members ...kernel.UUID) *shipment.Group {
	g, err := shipment.NewGroup(kernel.NewUUID(), kernel.NewUUID(), shipment.CarrierYamato, members)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, g))
	return g
}

func TestShipmentGroupRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentGroupRepositoryIntegrationTestSuite))
}
