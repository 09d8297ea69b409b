package cmd

import (
	"log/slog"
	"time"

	"fuelmarket/internal/adapters/in/http"
	"fuelmarket/internal/adapters/out/assignment"
	"fuelmarket/internal/adapters/out/postgres"
	"fuelmarket/internal/adapters/out/postgres/locationrepo"
	"fuelmarket/internal/adapters/out/postgres/notificationrepo"
	"fuelmarket/internal/adapters/out/postgres/orderrepo"
	"fuelmarket/internal/adapters/out/postgres/paymentrepo"
	"fuelmarket/internal/adapters/out/postgres/pricingrepo"
	"fuelmarket/internal/adapters/out/postgres/userrepo"
	"fuelmarket/internal/adapters/out/redisqueue"
	"fuelmarket/internal/core/application/usecases/commands"
	"fuelmarket/internal/core/application/usecases/queries"
	"fuelmarket/internal/core/domain/model/job"
	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/services"
	"fuelmarket/internal/core/ports"
	"fuelmarket/internal/jobs"
	"fuelmarket/internal/notify"
	"fuelmarket/internal/summary"
	"fuelmarket/internal/worker"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	queue      *redisqueue.Queue
	dispatcher *notify.Dispatcher
	summaries  *summary.Builder
	payments   ports.PaymentRepository
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	sesClient *sesv2.Client,
	logger *slog.Logger,
) CompositionRoot {
	notifications := notificationrepo.NewGormNotificationRepository(gormDB)
	users := userrepo.NewGormUserRepository(gormDB)
	payments := paymentrepo.NewGormPaymentRepository(gormDB)
	locations := locationrepo.NewGormLocationRepository(gormDB)
	orders := orderrepo.NewGormOrderRepository(gormDB, noopTracker{})

	channels := []ports.NotificationChannel{
		notify.NewDatabaseChannel(notifications, logger),
		notify.NewEmailChannel(sesClient, config.EmailSender, logger),
		notify.NewSMSChannel(logger),
		notify.NewPushChannel(logger),
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		queue:      redisqueue.NewQueue(redisClient, logger),
		dispatcher: notify.NewDispatcher(users, channels, logger),
		summaries:  summary.NewBuilder(orders, users, locations, payments),
		payments:   payments,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(
		f,
		pricingrepo.NewGormPriceConfigRepository(c.gormDB),
		services.NewPriceCalculator(),
		services.NewDeliveryScheduler(),
		c.queue,
		time.Now,
	)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(
		notificationrepo.NewGormNotificationRepository(c.gormDB),
	)
}

func (c *CompositionRoot) CreateMarkAllNotificationsReadCommandHandler() commands.MarkAllNotificationsReadCommandHandler {
	return commands.NewMarkAllNotificationsReadCommandHandler(
		notificationrepo.NewGormNotificationRepository(c.gormDB),
	)
}

func (c *CompositionRoot) CreateUpdateUrgencyFeeCommandHandler() commands.UpdateUrgencyFeeCommandHandler {
	return commands.NewUpdateUrgencyFeeCommandHandler(
		pricingrepo.NewGormPriceConfigRepository(c.gormDB),
	)
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserNotificationsQueryHandler() queries.GetUserNotificationsQueryHandler {
	return queries.NewGetUserNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPriceQuoteQueryHandler() queries.GetPriceQuoteQueryHandler {
	return queries.NewGetPriceQuoteQueryHandler(
		pricingrepo.NewGormPriceConfigRepository(c.gormDB),
		services.NewPriceCalculator(),
	)
}

// CreateQueueConsumer builds the queue consumer with the delivery job
// handler registered.
func (c *CompositionRoot) CreateQueueConsumer() *redisqueue.Consumer {
	handler := worker.NewDeliveryHandler(
		&c.uowFactory,
		assignment.NewGormDriverAssigner(c.gormDB),
		c.summaries,
		c.dispatcher,
		c.logger,
	)

	consumer := redisqueue.NewConsumer(c.queue, c.logger)
	consumer.Register(job.KindDelivery, handler)
	return consumer
}

// CreateJobManager builds the cron job manager over the queue consumer and
// the due-payment sweeper.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateQueueConsumer(),
		c.payments,
		c.summaries,
		c.dispatcher,
		c.logger,
	)
}

// CreateHTTPServer builds the HTTP server over all handlers.
func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateUpdateUrgencyFeeCommandHandler(),
		c.CreateMarkNotificationReadCommandHandler(),
		c.CreateMarkAllNotificationsReadCommandHandler(),
		c.CreateGetUserOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetUserNotificationsQueryHandler(),
		c.CreateGetPriceQuoteQueryHandler(),
		c.dispatcher,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// noopTracker satisfies the order repository's aggregate tracking hook for
// read-side use outside a unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}
