package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"pesapal_gateway/internal/adapter/persistence/inmemory"
	"pesapal_gateway/internal/adapter/persistence/repository"
	"pesapal_gateway/internal/infrastructure/config"
	"pesapal_gateway/internal/infrastructure/database"
	"pesapal_gateway/internal/infrastructure/kvstore"
	"pesapal_gateway/internal/infrastructure/payments"
	"pesapal_gateway/internal/usecase"
	"pesapal_gateway/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"
)

// App holds the wired dependencies shared by the HTTP API and the CLI.
type App struct {
	Config        config.Config
	Gateway       *payments.PesapalGateway
	Orders        usecase.IOrderUseCase
	Notifications usecase.INotificationUseCase

	closers []func() error
}

// New connects the configured stores and builds the use cases. Missing
// Pesapal credentials leave Gateway nil; the use cases then report the
// gateway as not configured.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{Config: cfg}

	var ddb *dynamodb.Client
	if cfg.OrderStore == config.StoreDynamoDB || cfg.IPNStore == config.StoreDynamoDB {
		client, err := database.ConnectDynamoDB(ctx, cfg.AWS)
		if err != nil {
			return nil, err
		}
		ddb = client
	}

	store, err := a.settingsStore(ctx, cfg, ddb)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	var orderRepo interfaces.IOrderRepository
	switch cfg.OrderStore {
	case config.StoreMemory:
		orderRepo = inmemory.NewOrderRepository()
	default:
		orderRepo = repository.NewOrderDynamoRepository(ddb)
	}

	var gateway interfaces.IPaymentGateway
	g, err := payments.NewPesapalGateway(
		cfg.Pesapal.ConsumerKey,
		cfg.Pesapal.ConsumerSecret,
		cfg.Pesapal.Live,
		payments.WithBaseURL(cfg.Pesapal.BaseURL),
		payments.WithTimeout(cfg.Pesapal.HTTPTimeout),
		payments.WithStore(store),
		payments.WithNotificationID(cfg.Pesapal.IPNID),
	)
	switch {
	case errors.Is(err, payments.ErrMissingPesapalCredentials):
		log.Printf("Pesapal gateway not configured: %v", err)
	case err != nil:
		_ = a.Close()
		return nil, err
	default:
		a.Gateway = g
		gateway = g
	}

	orders := usecase.NewOrderUseCase(orderRepo, gateway, cfg.Pesapal.IPNURL, cfg.Pesapal.IPNID)
	a.Orders = orders
	a.Notifications = usecase.NewNotificationUseCase(gateway, orders)
	return a, nil
}

func (a *App) settingsStore(ctx context.Context, cfg config.Config, ddb *dynamodb.Client) (kvstore.Store, error) {
	switch cfg.IPNStore {
	case config.StoreMemory:
		return kvstore.NewMemoryStore(), nil
	case config.StoreDynamoDB:
		return repository.NewSettingDynamoRepository(ddb), nil
	case config.StoreRedis:
		rdb, err := database.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)
		return repository.NewSettingRedisRepository(rdb), nil
	case config.StoreFile:
		fs := kvstore.NewFileStore(cfg.IPNCacheFile)
		log.Printf("[app] notification id store file path=%s", fs.Path())
		return fs, nil
	}
	return nil, fmt.Errorf("%w: PESAPAL_IPN_STORE=%q", config.ErrInvalidConfig, cfg.IPNStore)
}

// Close releases connections opened by New.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil && !errors.Is(err, redis.ErrClosed) {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
