package main

import (
	"context"
	"log/slog"
	"os"

	"tycoon/config"
	"tycoon/internal/delivery"
	"tycoon/internal/delivery/http"
	"tycoon/internal/delivery/http/middleware"
	"tycoon/internal/delivery/http/router/handler"
	"tycoon/internal/domain/service"
	"tycoon/internal/infra/auth"
	logs "tycoon/internal/infra/log"
	"tycoon/internal/infra/persistence/blob"
	"tycoon/internal/infra/persistence/sqlite"
	"tycoon/internal/infra/qrcode"
	"tycoon/internal/persist"
	"tycoon/internal/store"
	"tycoon/internal/usecase/impl"

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
			restoreState,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		store.New,
		sqlite.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			sqlite.NewSnapshotRepository,
			blob.NewGameSaveRepository,
			persist.NewAdapter,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			impl.NewEnergyService,
			impl.NewProgressionService,
			impl.NewShopService,
			impl.NewSubscriptionService,
			impl.NewPortfolioService,
			impl.NewMinigameService,
			impl.NewClassroomService,
			impl.NewContentService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAccountHandler,
			handler.NewPlayerHandler,
			handler.NewShopHandler,
			handler.NewPortfolioHandler,
			handler.NewMinigameHandler,
			handler.NewClassroomHandler,
			handler.NewContentHandler,
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

// restoreState hydrates the store from the persisted snapshot before any
// traffic is served.
func restoreState(ctx context.Context, adapter *persist.Adapter) error {
	return adapter.Restore(ctx)
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
