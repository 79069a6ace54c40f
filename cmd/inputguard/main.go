// Command inputguard runs a demo API behind the input guard: JSON bodies are
// scanned for injection payloads, registrations are validated, uploads are
// checked before they are stored and every finding lands in the audit log.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/inputguard/pkg/audit"
	"github.com/dmitrymomot/inputguard/pkg/clientip"
	"github.com/dmitrymomot/inputguard/pkg/config"
	"github.com/dmitrymomot/inputguard/pkg/file"
	"github.com/dmitrymomot/inputguard/pkg/guard"
	"github.com/dmitrymomot/inputguard/pkg/logger"
	"github.com/dmitrymomot/inputguard/pkg/mongo"
	"github.com/dmitrymomot/inputguard/pkg/requestid"
)

const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 120 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("inputguard stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load[appConfig]()
	if err != nil {
		return err
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Service),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	}
	if cfg.LogLevel != "" {
		logOpts = append(logOpts, logger.WithLevelName(cfg.LogLevel))
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	guardCfg, err := config.Load[guard.Config]()
	if err != nil {
		return err
	}

	storage, health, closeStorage, err := newAuditStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := closeStorage(shutdownCtx); err != nil {
			log.Error("failed to flush audit events", logger.Error(err))
		}
	}()

	auditOpts := []audit.Option{
		audit.WithRequestIDExtractor(requestid.Extractor()),
		audit.WithIPExtractor(clientip.Extractor()),
		audit.WithUserAgentExtractor(clientip.UserAgentExtractor()),
	}
	if cfg.AuditHashKey != "" {
		hasher, err := audit.NewKeyedHasher([]byte(cfg.AuditHashKey))
		if err != nil {
			return err
		}
		auditOpts = append(auditOpts, audit.WithUserIDHasher(hasher))
	}
	auditLog := audit.NewLogger(storage, auditOpts...)

	validation, err := uploadValidation(cfg)
	if err != nil {
		return err
	}
	uploads, err := newUploadStorage(ctx, cfg, validation)
	if err != nil {
		return err
	}

	g := guard.New(guardCfg, audit.NewThreatReporter(auditLog), guard.WithLogger(log))
	a := &api{guard: g, audit: auditLog, files: uploads, validation: validation, health: health}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(a, cfg.ProxyHeaders),
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}
	log.Info("starting server", slog.String("addr", cfg.Addr), logger.Policy(string(guardCfg.Policy)))
	return serve(ctx, srv, cfg, log)
}

// serve blocks until ctx ends, then shuts the server down gracefully.
func serve(ctx context.Context, srv *http.Server, cfg appConfig, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newAuditStorage(ctx context.Context, cfg appConfig, log *slog.Logger) (audit.Storage, func(context.Context) error, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	if cfg.AuditStorage != "mongo" {
		return audit.NewSlogStorage(log), noop, noop, nil
	}

	mongoCfg, err := config.Load[mongo.Config]()
	if err != nil {
		return nil, nil, nil, err
	}
	client, err := mongo.New(ctx, mongoCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	coll := client.Database(mongoCfg.Database).Collection(mongoCfg.AuditCollection)
	if err := mongo.EnsureAuditIndexes(ctx, coll, mongoCfg.AuditTTL); err != nil {
		return nil, nil, nil, err
	}

	async := audit.NewAsyncStorage(audit.NewMongoStorage(coll), audit.AsyncOptions{})
	closeFn := func(ctx context.Context) error {
		return errors.Join(async.Close(ctx), client.Disconnect(ctx))
	}
	return async, mongo.Healthcheck(client), closeFn, nil
}

func uploadValidation(cfg appConfig) ([]file.Option, error) {
	if cfg.MIMETableFile == "" {
		return nil, nil
	}
	f, err := os.Open(cfg.MIMETableFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := file.LoadMIMETable(f)
	if err != nil {
		return nil, err
	}
	return []file.Option{file.WithMIMETable(table)}, nil
}

func newUploadStorage(ctx context.Context, cfg appConfig, validation []file.Option) (file.Storage, error) {
	if cfg.UploadStorage == "s3" {
		s3Cfg, err := config.Load[file.S3Config]()
		if err != nil {
			return nil, err
		}
		return file.NewS3Storage(ctx, s3Cfg, file.WithS3Validation(validation...))
	}
	return file.NewLocalStorage(cfg.UploadDir, cfg.UploadBaseURL, file.WithLocalValidation(validation...))
}
