package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/abcretail/storefront/internal/config"
	"github.com/abcretail/storefront/internal/domain"
	"github.com/abcretail/storefront/internal/fulfillment"
	kafkax "github.com/abcretail/storefront/internal/kafka"
	"github.com/abcretail/storefront/internal/metrics"
	redisstore "github.com/abcretail/storefront/internal/storage/redis"
)

func main() {
	_ = godotenv.Load()

	log.SetFormatter(&log.JSONFormatter{})
	logger := log.WithField("component", "fulfillment")

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisstore.New(cfg.RedisAddr)
	defer rdb.Close()

	registry := prometheus.NewRegistry()
	worker := &fulfillment.Worker{
		Orders:  &redisstore.OrderStore{RDB: rdb},
		Metrics: metrics.NewFulfillment(registry),
		Log:     logger,
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		_ = http.ListenAndServe(cfg.MetricsAddr, mux)
	}()

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroup, domain.TopicOrderSubmitted, cfg.Workers)

	go func() {
		logger.WithFields(log.Fields{
			"group": cfg.KafkaGroup, "topic": domain.TopicOrderSubmitted, "workers": cfg.Workers,
		}).Info("fulfillment consumer started")
		if err := cons.Start(ctx, worker.HandleMessage); err != nil {
			logger.WithError(err).Error("consumer exit")
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down consumer")
	cancel()
	time.Sleep(500 * time.Millisecond)
}
