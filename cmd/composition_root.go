package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/in/kafkasales"
	"fulfillment/internal/adapters/out/carrier"
	"fulfillment/internal/adapters/out/kafkabus"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/rediscache"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/jobs"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	serviceName       = "fulfillment"
	shipmentCacheTTL  = 5 * time.Minute
	relayClaimTTL     = 30 * time.Second
	connectionTimeout = 10 * time.Second
)

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	gormDB     *gorm.DB
	sqlxDB     *sqlx.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	redis *redis.Client
	cache *rediscache.ShipmentCache

	producer *kafkabus.Producer
	labels   *carrier.LocalLabelIssuer
	notifier *commands.EventNotifier
}

// OpenDatabase connects GORM and shares its pool with sqlx for the read side.
func OpenDatabase(cfg Config) (*gorm.DB, *sqlx.DB, error) {
	gormDB, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("unwrap postgres pool: %w", err)
	}
	return gormDB, sqlx.NewDb(sqlDB, "pgx"), nil
}

func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	gormDB, sqlxDB, err := OpenDatabase(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()
	if err = sqlxDB.PingContext(ctx); err != nil {
		_ = sqlxDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	redisClient, err := rediscache.NewClient(ctx, rediscache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		_ = sqlxDB.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	var notificationFactory commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return uowFactory.Create()
	})

	return &CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		gormDB:     gormDB,
		sqlxDB:     sqlxDB,
		uowFactory: uowFactory,
		redis:      redisClient,
		cache:      rediscache.NewShipmentCache(redisClient, shipmentCacheTTL),
		producer:   kafkabus.NewProducer(cfg.KafkaBrokers, cfg.KafkaNotificationsTopic),
		labels:     carrier.NewLocalLabelIssuer(),
		notifier:   commands.NewEventNotifier(notificationFactory, logger),
	}, nil
}

func (c *CompositionRoot) Close() error {
	return errors.Join(
		c.producer.Close(),
		c.redis.Close(),
		c.sqlxDB.Close(),
	)
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateIntakeProductCommandHandler() commands.IntakeProductCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	return commands.NewIntakeProductCommandHandler(f)
}

func (c *CompositionRoot) CreateApplyProductTransitionCommandHandler() commands.ApplyProductTransitionCommandHandler {
	return commands.NewApplyProductTransitionCommandHandler(c.uow(), c.notifier, c.cache, c.logger)
}

func (c *CompositionRoot) CreateCreateLocationCommandHandler() commands.CreateLocationCommandHandler {
	var f commands.LocationUoWFactory = FuncLocationUoWFactory(func() commands.LocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateLocationCommandHandler(f)
}

func (c *CompositionRoot) CreateResolveBundleCommandHandler() commands.ResolveBundleCommandHandler {
	return commands.NewResolveBundleCommandHandler(c.uow(), c.notifier, c.cache, c.logger)
}

func (c *CompositionRoot) CreateAdvanceShipmentCommandHandler() commands.AdvanceShipmentCommandHandler {
	return commands.NewAdvanceShipmentCommandHandler(c.uow(), c.labels, c.notifier, c.cache, c.logger)
}

func (c *CompositionRoot) CreateIssueShipmentLabelCommandHandler() commands.IssueShipmentLabelCommandHandler {
	return commands.NewIssueShipmentLabelCommandHandler(c.uow(), c.labels, c.notifier, c.cache, c.logger)
}

func (c *CompositionRoot) CreateRemoveBundleMemberCommandHandler() commands.RemoveBundleMemberCommandHandler {
	return commands.NewRemoveBundleMemberCommandHandler(c.uow(), c.notifier, c.cache, c.logger)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkNotificationReadCommandHandler(f)
}

func (c *CompositionRoot) CreateRelayNotificationsCommandHandler() commands.RelayNotificationsCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayNotificationsCommandHandler(
		f,
		kafkabus.NewNotificationPublisher(c.producer, serviceName),
		rediscache.NewRelayGuard(c.redis, relayClaimTTL),
		c.logger,
	)
}

func (c *CompositionRoot) CreateReconcileLocationsCommandHandler() commands.ReconcileLocationsCommandHandler {
	var f commands.LocationUoWFactory = FuncLocationUoWFactory(func() commands.LocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileLocationsCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateListAuditQueryHandler() queries.ListAuditQueryHandler {
	return queries.NewListAuditQueryHandler(c.sqlxDB)
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.sqlxDB)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.sqlxDB, c.cache, c.logger)
}

func (c *CompositionRoot) CreateListLocationsQueryHandler() queries.ListLocationsQueryHandler {
	return queries.NewListLocationsQueryHandler(c.sqlxDB)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(http.Handlers{
		IntakeProduct:          c.CreateIntakeProductCommandHandler(),
		ApplyProductTransition: c.CreateApplyProductTransitionCommandHandler(),
		CreateLocation:         c.CreateCreateLocationCommandHandler(),
		ResolveBundle:          c.CreateResolveBundleCommandHandler(),
		AdvanceShipment:        c.CreateAdvanceShipmentCommandHandler(),
		IssueShipmentLabel:     c.CreateIssueShipmentLabelCommandHandler(),
		RemoveBundleMember:     c.CreateRemoveBundleMemberCommandHandler(),
		MarkNotificationRead:   c.CreateMarkNotificationReadCommandHandler(),
		ListAudit:              c.CreateListAuditQueryHandler(),
		ListNotifications:      c.CreateListNotificationsQueryHandler(),
		GetShipment:            c.CreateGetShipmentQueryHandler(),
		ListLocations:          c.CreateListLocationsQueryHandler(),
	}, c.cfg.DefaultCarrier, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRelayNotificationsCommandHandler(),
		c.CreateReconcileLocationsCommandHandler(),
		jobs.Schedules{Relay: c.cfg.RelaySchedule, Reconcile: c.cfg.ReconcileSchedule},
		c.cfg.RelayBatchSize,
		c.logger,
	)
}

func (c *CompositionRoot) CreateSalesConsumer() (*kafkasales.Consumer, *kafkasales.SaleHandler) {
	consumer := kafkasales.NewConsumer(c.cfg.KafkaBrokers, c.cfg.KafkaConsumerGroup, c.cfg.KafkaSalesTopic, c.logger)
	return consumer, kafkasales.NewSaleHandler(c.CreateApplyProductTransitionCommandHandler(), c.logger)
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncLocationUoWFactory func() commands.LocationUoW

func (f FuncLocationUoWFactory) Create() commands.LocationUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
