package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/anever/school-portal/pkg/clock"
	"github.com/anever/school-portal/pkg/kafka"
	"github.com/anever/school-portal/pkg/logger"
	"github.com/anever/school-portal/pkg/postgres"
	"github.com/anever/school-portal/portal/config"
	"github.com/anever/school-portal/portal/internal/handler"
	"github.com/anever/school-portal/portal/internal/repository"
	"github.com/anever/school-portal/portal/internal/server"
	"github.com/anever/school-portal/portal/internal/service"
	"github.com/anever/school-portal/portal/migrations"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "portal")

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		log.Fatal("load time zone", zap.String("zone", cfg.TimeZone), zap.Error(err))
	}
	clk := clock.New(loc)

	var repo repository.Repository
	closeStore := func() {}
	switch cfg.StoreBackend {
	case config.StorePostgres:
		db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
		if err != nil {
			log.Fatal("db init", zap.Error(err))
		}
		repo, err = repository.NewPostgres(db, log)
		if err != nil {
			log.Fatal("repo", zap.Error(err))
		}
		closeStore = func() { db.Close() }
	default:
		repo = repository.NewMemory(repository.DefaultSeed(cfg.DefaultHolder, clk.Today()))
	}

	opts := []service.Option{
		service.WithPolicy(service.Policy{
			HoldDays:       cfg.HoldDays,
			CheckoutDays:   cfg.CheckoutDays,
			RenewalDays:    cfg.RenewalDays,
			MaxRenewals:    cfg.MaxRenewals,
			FineRatePerDay: cfg.FineRatePerDay,
		}),
	}

	var producer sarama.SyncProducer
	if cfg.Kafka.Enabled {
		producer, err = kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		opts = append(opts, service.WithAuditor(service.NewKafkaAuditor(producer, kafka.AuditTopic, log)))
	}

	svc := service.NewService(repo, clk, log, opts...)
	h := handler.New(svc, log)
	srv := server.NewServer(cfg.HTTP, h.NewRouter(handler.RouterConfig{
		DefaultHolder: cfg.DefaultHolder,
		UseJWT:        cfg.UseJWT,
	}))

	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)))

	g := new(errgroup.Group)
	g.Go(func() error {
		return srv.Run()
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		log.Error("server run", zap.Error(err))
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("producer.Close", zap.Error(err))
		}
	}
	closeStore()
	log.Info("Graceful shutdown finished")
}
