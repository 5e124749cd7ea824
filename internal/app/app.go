package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/crm-backend/internal/adapter/postgres"
	activitydb "github.com/heartmarshall/crm-backend/internal/adapter/postgres/activity"
	attachmentdb "github.com/heartmarshall/crm-backend/internal/adapter/postgres/attachment"
	commentdb "github.com/heartmarshall/crm-backend/internal/adapter/postgres/comment"
	orgdb "github.com/heartmarshall/crm-backend/internal/adapter/postgres/org"
	profiledb "github.com/heartmarshall/crm-backend/internal/adapter/postgres/profile"
	"github.com/heartmarshall/crm-backend/internal/config"
	"github.com/heartmarshall/crm-backend/internal/entitytype"
	activitysvc "github.com/heartmarshall/crm-backend/internal/service/activity"
	attachmentsvc "github.com/heartmarshall/crm-backend/internal/service/attachment"
	commentsvc "github.com/heartmarshall/crm-backend/internal/service/comment"
	"github.com/heartmarshall/crm-backend/internal/storage/objectstore"
	"github.com/heartmarshall/crm-backend/internal/tenant"
)

// App holds the wired record services. Transports (GraphQL, gRPC) live in
// separate deployables and consume these services directly.
type App struct {
	Comments    *commentsvc.Service
	Attachments *attachmentsvc.Service
	Activity    *activitysvc.Service

	pool *pgxpool.Pool
	log  *slog.Logger
}

// New connects to PostgreSQL and the object store and wires the services.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	blobs, err := objectstore.NewMinioStore(cfg.ObjectStore)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to object store: %w", err)
	}

	txm := postgres.NewTxManager(pool)

	comments := commentdb.New(pool)
	attachments := attachmentdb.New(pool)
	activity := activitydb.New(pool)
	orgs := orgdb.New(pool)
	profiles := profiledb.New(pool)

	guard := tenant.NewGuard(logger, orgs)
	resolver := entitytype.NewResolver(entitytype.NewDefaultRegistry())
	targets := &profileDirectory{profiles: profiles}

	return &App{
		Comments: commentsvc.NewService(
			logger, comments, activity, profiles, targets,
			guard, resolver, txm, cfg.Retry, cfg.Pagination,
		),
		Attachments: attachmentsvc.NewService(
			logger, attachments, activity, profiles, targets,
			guard, resolver, txm, blobs, cfg.Retry, cfg.Pagination,
		),
		Activity: activitysvc.NewService(
			logger, activity, profiles, guard, cfg.Retry, cfg.Pagination,
		),
		pool: pool,
		log:  logger,
	}, nil
}

// Close releases the database pool.
func (a *App) Close() {
	a.pool.Close()
}

// Run is the application entry point. It loads configuration, initializes
// the logger, wires the services, and blocks until the context is
// cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	logger.Info("application ready")

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}
