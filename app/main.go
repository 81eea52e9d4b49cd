package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sushihentaime/bloglist/internal/activityservice"
	"github.com/sushihentaime/bloglist/internal/auth"
	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/metrics"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

type application struct {
	config          *Config
	logger          *slog.Logger
	userService     *userservice.UserService
	blogService     *blogservice.BlogService
	activityService *activityservice.ActivityService
	gate            *auth.Gate
	metrics         *metrics.Manager
	registry        *prometheus.Registry
	cache           *common.Cache
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.Environment == "production" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}

	st, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()), slog.String("driver", cfg.StoreDriver))
		os.Exit(1)
	}
	defer st.close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsManager := metrics.NewManager("bloglist", "server", registry)

	// events are dropped when no broker is configured
	var producer common.MessageProducer = common.NopProducer{}
	var activityService *activityservice.ActivityService

	if uri := cfg.RabbitMQURI(); uri != "" {
		broker, err := common.NewMessageBroker(uri)
		if err != nil {
			logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer broker.Close()

		err = common.SetupBloglistExchange(broker)
		if err != nil {
			logger.Error("failed to setup the bloglist exchange", slog.String("error", err.Error()))
			os.Exit(1)
		}

		producer = broker
		activityService = activityservice.NewActivityService(broker, metricsManager, logger)
		if err := activityService.Start(); err != nil {
			os.Exit(1)
		}
	}

	tokens := auth.NewTokenManager([]byte(cfg.Secret))
	userService := userservice.NewUserService(st.users, userservice.NewPasswordHasher(cfg.BcryptCost), tokens, producer, logger)

	app := &application{
		config:          cfg,
		logger:          logger,
		userService:     userService,
		blogService:     blogservice.NewBlogService(st.blogs, producer, logger),
		activityService: activityService,
		gate:            auth.NewGate(tokens, userService),
		metrics:         metricsManager,
		registry:        registry,
		cache:           common.NewCache(3*time.Minute, 5*time.Minute),
	}

	err = app.serve(cfg.Addr())
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
