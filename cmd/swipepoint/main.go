package main

import (
	// Go Internal Packages
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Local Packages
	config "swipepoint/config"
	kafka "swipepoint/kafka"
	mongodb "swipepoint/repositories/mongodb"
	postgres "swipepoint/repositories/postgres"
	redis "swipepoint/repositories/redis"
	server "swipepoint/server"
	companiessvc "swipepoint/services/companies"
	email "swipepoint/services/email"
	geosvc "swipepoint/services/geo"
	paymentssvc "swipepoint/services/payments"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	_ "github.com/jsternberg/zap-logfmt"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

// LoadConfig loads the default configuration and overrides it with the config file
// specified by the path defined in the config flag
func LoadConfig() *koanf.Koanf {
	configPathMsg := "Path to the application config file"
	configPath := kingpin.Flag("config", configPathMsg).Short('c').Default("config.yml").String()

	kingpin.Parse()
	k := koanf.New(".")
	_ = k.Load(rawbytes.Provider(config.DefaultConfig), yaml.Parser())
	if *configPath != "" {
		_ = k.Load(file.Provider(*configPath), yaml.Parser())
	}
	return k
}

func main() {
	k := LoadConfig()
	appKonf := config.Config{}

	// Unmarshalling config into struct
	err := k.Unmarshal("", &appKonf)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Validate the config loaded
	if err = appKonf.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if !appKonf.IsProdMode {
		k.Print()
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "logfmt"
	_ = cfg.Level.UnmarshalText([]byte(k.String("logger.level")))
	cfg.InitialFields = make(map[string]any)
	cfg.InitialFields["host"], _ = os.Hostname()
	cfg.InitialFields["service"] = appKonf.Application
	cfg.OutputPaths = []string{"stdout"}
	logger, _ := cfg.Build()
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage port selection happens here and only here; everything
	// downstream works against the repository interfaces.
	var paymentsRepo paymentssvc.PaymentsRepository
	var companiesRepo companiessvc.CompaniesRepository
	var merchantLookup paymentssvc.CompaniesRepository

	switch appKonf.Storage.Driver {
	case "mongo":
		mongoClient, err := mongodb.Connect(ctx, appKonf.Mongo.URI)
		if err != nil {
			logger.Fatal("cannot create mongo client", zap.Error(err))
		}

		payments := mongodb.NewPaymentsRepository(mongoClient, appKonf.Mongo.Database)
		companies := mongodb.NewCompaniesRepository(mongoClient, appKonf.Mongo.Database)
		if err = payments.EnsureIndexes(ctx); err != nil {
			logger.Fatal("cannot create payment indexes", zap.Error(err))
		}
		if err = companies.EnsureIndexes(ctx); err != nil {
			logger.Fatal("cannot create company indexes", zap.Error(err))
		}
		paymentsRepo, companiesRepo, merchantLookup = payments, companies, companies
	case "postgres":
		pool, err := postgres.Connect(ctx, appKonf.Postgres.URI)
		if err != nil {
			logger.Fatal("cannot create postgres pool", zap.Error(err))
		}
		defer pool.Close()

		if err = postgres.EnsureSchema(ctx, pool); err != nil {
			logger.Fatal("cannot create postgres schema", zap.Error(err))
		}
		payments := postgres.NewPaymentsRepository(pool)
		companies := postgres.NewCompaniesRepository(pool)
		paymentsRepo, companiesRepo, merchantLookup = payments, companies, companies
	}

	// Redis Connection
	redisClient, err := redis.Connect(ctx, appKonf.Redis.URI, appKonf.Redis.Password)
	if err != nil {
		logger.Fatal("cannot create redis client", zap.Error(err))
	}

	emailDLQ := redis.NewEmailDeadLetterStore(redisClient, logger)
	mailtrap := email.NewMailtrapClient(appKonf.Mailtrap)
	receipts := email.NewReceiptDispatcher(mailtrap, emailDLQ, logger)

	var events paymentssvc.EventPublisher = kafka.NopPublisher{}
	if appKonf.Kafka.Publish {
		metrics := kprom.NewMetrics("sp")
		conf := &kafka.PublisherConfig{
			Brokers:    appKonf.Kafka.Brokers,
			ClientName: appKonf.Kafka.ClientName,
			Topic:      appKonf.Kafka.Topic,
		}

		publisher, err := kafka.NewPublisher(conf, metrics, logger)
		if err != nil {
			logger.Fatal("cannot create events publisher", zap.Error(err))
		}
		defer publisher.Close()
		events = publisher
	}

	paymentsService := paymentssvc.NewService(logger, appKonf.Gateway, paymentsRepo, merchantLookup, receipts, events)
	companiesService := companiessvc.NewService(logger, companiesRepo)
	geoClient := geosvc.NewClient(appKonf.Geo.BaseURL)

	srv := server.New(appKonf.Server, logger, paymentsService, companiesService, geoClient)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal("http server failed", zap.Error(err))
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown failed", zap.Error(err))
		}
		logger.Info("shutdown complete")
	}
}
