package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/location"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductRepository) CountByLocation(ctx context.Context) (map[kernel.UUID]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]int), args.Error(1)
}

type MockLocationRepository struct{ mock.Mock }

func (m *MockLocationRepository) Add(ctx context.Context, l *location.Location) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLocationRepository) Update(ctx context.Context, l *location.Location) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLocationRepository) Get(ctx context.Context, id kernel.UUID) (*location.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.Location), args.Error(1)
}

func (m *MockLocationRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*location.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.Location), args.Error(1)
}

func (m *MockLocationRepository) List(ctx context.Context) ([]*location.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*location.Location), args.Error(1)
}

type MockShipmentGroupRepository struct{ mock.Mock }

func (m *MockShipmentGroupRepository) Add(ctx context.Context, g *shipment.Group) error {
	return m.Called(ctx, g).Error(0)
}

func (m *MockShipmentGroupRepository) Update(ctx context.Context, g *shipment.Group) error {
	return m.Called(ctx, g).Error(0)
}

func (m *MockShipmentGroupRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Group), args.Error(1)
}

func (m *MockShipmentGroupRepository) FindOpenByProduct(ctx context.Context, id kernel.UUID) (*shipment.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Group), args.Error(1)
}

func (m *MockShipmentGroupRepository) OpenMemberships(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]kernel.UUID, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]kernel.UUID), args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) AddIfAbsent(ctx context.Context, n *notification.Notification) (bool, error) {
	args := m.Called(ctx, n)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNotificationRepository) MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListUnpublished(ctx context.Context, limit int) ([]*notification.Notification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, entries ...audit.Entry) error {
	return m.Called(ctx, entries).Error(0)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	return m.Called().Get(0).(ports.ProductRepository)
}

func (m *MockUoW) LocationRepository() ports.LocationRepository {
	return m.Called().Get(0).(ports.LocationRepository)
}

func (m *MockUoW) ShipmentGroupRepository() ports.ShipmentGroupRepository {
	return m.Called().Get(0).(ports.ShipmentGroupRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	return m.Called().Get(0).(ports.NotificationRepository)
}

func (m *MockUoW) AuditRepository() ports.AuditRepository {
	return m.Called().Get(0).(ports.AuditRepository)
}

type uowFactory struct{ uow *MockUoW }

func (f uowFactory) Create() commands.UoW { return f.uow }

type productUoWFactory struct{ uow *MockUoW }

func (f productUoWFactory) Create() commands.ProductUoW { return f.uow }

type locationUoWFactory struct{ uow *MockUoW }

func (f locationUoWFactory) Create() commands.LocationUoW { return f.uow }

type notificationUoWFactory struct{ uow *MockUoW }

func (f notificationUoWFactory) Create() commands.NotificationUoW { return f.uow }

type MockEventDispatcher struct{ mock.Mock }

func (m *MockEventDispatcher) Dispatch(ctx context.Context, events []event.Event) {
	m.Called(ctx, events)
}

type MockLabelIssuer struct{ mock.Mock }

func (m *MockLabelIssuer) Issue(ctx context.Context, g *shipment.Group) (string, error) {
	args := m.Called(ctx, g)
	return args.String(0), args.Error(1)
}

type MockCache struct{ mock.Mock }

func (m *MockCache) Invalidate(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type MockRelayGuard struct{ mock.Mock }

func (m *MockRelayGuard) Claim(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRelayGuard) Release(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// fixture wires one MockUoW to a full set of repositories.
type fixture struct {
	uow       *MockUoW
	products  *MockProductRepository
	locations *MockLocationRepository
	groups    *MockShipmentGroupRepository
	notifs    *MockNotificationRepository
	audits    *MockAuditRepository
	events    *MockEventDispatcher
	cache     *MockCache
}

func newFixture() *fixture {
	f := &fixture{
		uow:       new(MockUoW),
		products:  new(MockProductRepository),
		locations: new(MockLocationRepository),
		groups:    new(MockShipmentGroupRepository),
		notifs:    new(MockNotificationRepository),
		audits:    new(MockAuditRepository),
		events:    new(MockEventDispatcher),
		cache:     new(MockCache),
	}
	f.uow.On("ProductRepository").Return(f.products).Maybe()
	f.uow.On("LocationRepository").Return(f.locations).Maybe()
	f.uow.On("ShipmentGroupRepository").Return(f.groups).Maybe()
	f.uow.On("NotificationRepository").Return(f.notifs).Maybe()
	f.uow.On("AuditRepository").Return(f.audits).Maybe()
	return f
}

// expectTx sets up Begin, Commit and the deferred Rollback.
func (f *fixture) expectTx(ctx context.Context, commit bool) {
	f.uow.On("Begin", ctx).Return(nil).Once()
	if commit {
		f.uow.On("Commit", ctx).Return(nil).Once()
	}
	f.uow.On("Rollback", ctx).Return(nil).Once()
}

func (f *fixture) assertExpectations(t mock.TestingT) {
	f.uow.AssertExpectations(t)
	f.products.AssertExpectations(t)
	f.locations.AssertExpectations(t)
	f.groups.AssertExpectations(t)
	f.notifs.AssertExpectations(t)
	f.audits.AssertExpectations(t)
	f.events.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}

func mustActor(role kernel.Role) kernel.Actor {
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	if err != nil {
		panic(err)
	}
	return a
}

func mustProduct(owner kernel.UUID, status product.Status, loc *kernel.UUID) *product.Product {
	now := time.Now().UTC()
	p, err := product.RestoreProduct(kernel.NewUUID(), owner, status, loc, nil, 1, now, now)
	if err != nil {
		panic(err)
	}
	return p
}

func mustLocation(capacity, count int) *location.Location {
	l, err := location.RestoreLocation(kernel.NewUUID(), "A-"+kernel.NewUUID().String()[:4], capacity, count, time.Now())
	if err != nil {
		panic(err)
	}
	return l
}

func mustGroup(status shipment.Status, tracking string, members ...*product.Product) *shipment.Group {
	ids := make([]kernel.UUID, len(members))
	for i, m := range members {
		ids[i] = m.ID()
	}
	now := time.Now().UTC()
	g, err := shipment.RestoreGroup(kernel.NewUUID(), members[0].OwnerID(), status, shipment.CarrierYamato, tracking, ids, 1, now, now)
	if err != nil {
		panic(err)
	}
	return g
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
