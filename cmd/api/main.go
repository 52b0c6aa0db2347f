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
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"

	"github.com/abcretail/storefront/internal/cart"
	"github.com/abcretail/storefront/internal/checkout"
	"github.com/abcretail/storefront/internal/config"
	"github.com/abcretail/storefront/internal/domain"
	"github.com/abcretail/storefront/internal/httpx"
	kafkax "github.com/abcretail/storefront/internal/kafka"
	"github.com/abcretail/storefront/internal/metrics"
	"github.com/abcretail/storefront/internal/storage/postgres"
	redisstore "github.com/abcretail/storefront/internal/storage/redis"
	"github.com/abcretail/storefront/internal/uploads"
)

func main() {
	_ = godotenv.Load()

	log.SetFormatter(&log.JSONFormatter{})
	logger := log.WithField("component", "api")

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cart rows live in postgres; catalog/identity/orders live in redis.
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.WithError(err).Fatal("db connect")
	}
	defer db.Close()

	cartStore := &postgres.CartStore{DB: db}
	if err := cartStore.EnsureSchema(ctx); err != nil {
		logger.WithError(err).Fatal("cart schema")
	}

	rdb := redisstore.New(cfg.RedisAddr)
	defer rdb.Close()

	productStore := &redisstore.ProductStore{RDB: rdb}
	customerStore := &redisstore.CustomerStore{RDB: rdb}
	orderStore := &redisstore.OrderStore{RDB: rdb}

	producer := kafkax.NewProducer(cfg.KafkaBrokers, domain.TopicOrderSubmitted)
	defer producer.Close()
	queue := &kafkax.Queue{Producer: producer, Service: cfg.ServiceName}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	cartSvc := &cart.Service{
		Cart:     cartStore,
		Products: productStore,
		Log:      log.WithField("component", "cart"),
	}
	checkoutSvc := &checkout.Service{
		Cart:      cartStore,
		Products:  productStore,
		Customers: customerStore,
		Queue:     queue,
		Metrics:   metrics.NewCheckout(registry),
		Log:       log.WithField("component", "checkout"),
	}

	uploadStore, err := uploads.NewStore(cfg.UploadDir)
	if err != nil {
		logger.WithError(err).Fatal("upload store")
	}

	router := httpx.NewRouter(registry)
	(&httpx.ProductsHandler{Products: productStore}).Register(router)
	(&httpx.CustomersHandler{Customers: customerStore, Orders: orderStore}).Register(router)
	(&httpx.OrdersHandler{Orders: orderStore, Queue: queue}).Register(router)
	(&httpx.CartHandler{Cart: cartSvc, Checkout: checkoutSvc}).Register(router)
	(&httpx.UploadsHandler{Store: uploadStore}).Register(router)
	httpx.ServeUploads(router, cfg.UploadDir)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("HTTP listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("listen")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
}
