package bootstrap

import (
	"context"
	"log"
	"strings"

	"meal-planner-be/internal/config"
	"meal-planner-be/internal/controller"
	"meal-planner-be/internal/pkg/logger"
	"meal-planner-be/internal/repository/unitofwork"
	"meal-planner-be/internal/service"
	"meal-planner-be/pkg/events"
	"meal-planner-be/pkg/metrics"
	pktNats "meal-planner-be/pkg/nats"
	"meal-planner-be/pkg/quota"
	"meal-planner-be/pkg/recipeprovider"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	MealPlanController     controller.MealPlanController
	ShoppingListController controller.ShoppingListController
	UserController         controller.UserController
	PlanController         controller.PlanController
	RecipeController       controller.RecipeController

	// Background Services (Exposed for main.go to run)
	ConsumerService   service.IConsumerService
	EventStatsService service.IEventStatsService
	NatsSubscriber    *pktNats.Subscriber

	Metrics *metrics.Metrics
	Logger  logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	providerLogger := logger.NewIsolatedLogger(cfg.App.ProviderLogPath)
	appMetrics := metrics.New()

	c := &Container{Metrics: appMetrics, Logger: sysLogger}

	// 2. Event Bus (in-process background work)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Infrastructure
	// NATS
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			publisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}

		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, sysLogger)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			c.NatsSubscriber = natsSub
			c.closers = append(c.closers, natsSub.Close)
		}
	} else {
		log.Println("[INFO] NATS_URL not set, domain events are dropped")
	}

	// Redis
	var primaryCounter quota.Counter
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		primaryCounter = quota.NewRedisCounter(rdb)
		c.closers = append(c.closers, func() { rdb.Close() })
	} else {
		log.Println("[INFO] REDIS_URL not set, quota counters kept in memory")
	}
	quotaTracker := quota.NewTracker(primaryCounter, quota.NewMemoryCounter(), sysLogger)

	// Recipe provider
	if strings.TrimSpace(cfg.Provider.APIKey) == "" {
		log.Println("[WARN] SPOONACULAR_API_KEY is empty, provider calls will be rejected")
	}
	provider := recipeprovider.NewClient(recipeprovider.Config{
		BaseURL:        cfg.Provider.BaseURL,
		APIKey:         cfg.Provider.APIKey,
		Timeout:        cfg.Provider.Timeout,
		RatePerSecond:  cfg.Provider.RatePerSecond,
		Burst:          cfg.Provider.Burst,
		DetailCacheTTL: cfg.Provider.DetailCacheTTL,
	}, recipeprovider.WithObserver(appMetrics))

	// 4. Services
	refreshPublisher := service.NewPublisherService(cfg.App.RefreshTopic, pubSub)

	tierService := service.NewTierService(uowFactory, quotaTracker, publisher, appMetrics, sysLogger)
	preferenceService := service.NewPreferenceService(uowFactory, sysLogger)
	userService := service.NewUserService(tierService)
	importer := service.NewRecipeImporter(provider, appMetrics, providerLogger)
	mealPlanService := service.NewMealPlanService(
		uowFactory,
		tierService,
		provider,
		importer,
		publisher,
		refreshPublisher,
		appMetrics,
		sysLogger,
	)
	shoppingListService := service.NewShoppingListService(uowFactory, tierService, publisher, appMetrics, sysLogger)
	recipeService := service.NewRecipeService(tierService, provider, sysLogger)

	c.ConsumerService = service.NewConsumerService(pubSub, cfg.App.RefreshTopic, shoppingListService, sysLogger)
	c.EventStatsService = service.NewEventStatsService(appMetrics, sysLogger)

	// 5. Controllers
	c.MealPlanController = controller.NewMealPlanController(mealPlanService)
	c.ShoppingListController = controller.NewShoppingListController(shoppingListService)
	c.UserController = controller.NewUserController(userService, preferenceService, tierService)
	c.PlanController = controller.NewPlanController(tierService)
	c.RecipeController = controller.NewRecipeController(recipeService)

	return c
}

// StartBackground starts the shopping list consumer and, when NATS is
// configured, the domain event counter.
func (c *Container) StartBackground(ctx context.Context) error {
	if err := c.ConsumerService.Consume(ctx); err != nil {
		return err
	}
	if c.NatsSubscriber != nil {
		if err := c.NatsSubscriber.Subscribe(pktNats.Subject(">"), "meal-planner-stats", c.EventStatsService.Handle); err != nil {
			log.Printf("[WARN] Failed to subscribe to domain events: %v", err)
		}
	}
	return nil
}

func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.Logger.Sync()
}
