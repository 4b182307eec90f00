package main

import (
	"context"
	"log/slog"
	"os"

	"dacsan/config"
	"dacsan/internal/delivery"
	"dacsan/internal/delivery/http"
	httpmiddleware "dacsan/internal/delivery/http/middleware"
	"dacsan/internal/delivery/http/router/handler"
	"dacsan/internal/delivery/middleware"
	"dacsan/internal/domain/pricing"
	"dacsan/internal/domain/service"
	"dacsan/internal/infra/auth"
	"dacsan/internal/infra/clock"
	logs "dacsan/internal/infra/log"
	"dacsan/internal/infra/persistence/postgres"
	"dacsan/internal/infra/pubsub"
	"dacsan/internal/infra/qrcode"
	"dacsan/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		// Expose the shipping region index for the pricing engine
		func(cfg *config.Config) *pricing.RegionIndex {
			if cfg == nil || cfg.Shipping == nil {
				return pricing.NewRegionIndex(nil)
			}

			return pricing.NewRegionIndex(cfg.Shipping.Regions)
		},
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewCatalogRepository,
			postgres.NewVoucherRepository,
			postgres.NewLoyaltyRepository,
			postgres.NewOrderRepository,
			postgres.NewDeliveryMethodRepository,
			postgres.NewDeviceRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			clock.New,
			pubsub.NewEventPublisher,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M", "")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCheckoutService,
			impl.NewVoucherService,
			impl.NewOrderService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			httpmiddleware.NewAuthMiddleware,
			httpmiddleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewCheckoutHandler,
			handler.NewVoucherHandler,
			handler.NewOrderHandler,
			handler.NewDeviceHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
