package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"stock-snapshot/internal/application"
	"stock-snapshot/internal/config"
	"stock-snapshot/internal/domain"
	"stock-snapshot/internal/infrastructure/alphavantage"
	"stock-snapshot/internal/infrastructure/export"
	"stock-snapshot/internal/infrastructure/httpx"
	kafkapub "stock-snapshot/internal/infrastructure/kafka"
	"stock-snapshot/internal/infrastructure/logx"
	"stock-snapshot/internal/infrastructure/pg"
	redisstore "stock-snapshot/internal/infrastructure/redis"
	"stock-snapshot/internal/infrastructure/snapshot"
	"stock-snapshot/internal/infrastructure/synthetic"
)

// Mirrors holds the configured secondary destinations in the order they run.
type Mirrors []application.SnapshotMirror

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig(log *zap.Logger) config.Config {
	cfg := config.Load()
	logx.SetLevel(cfg.LogLevel)
	if !cfg.APIKeyProvided {
		log.Warn("no_api_key",
			zap.String("hint", "set ALPHA_VANTAGE_API_KEY to fetch live data"),
			zap.String("mode", "demo"),
		)
	}
	return cfg
}

func ProvidePipelineConfig(cfg config.Config) (application.PipelineConfig, error) {
	size, ok := domain.ParseOutputSize(cfg.HistoryOutput)
	if !ok {
		return application.PipelineConfig{}, fmt.Errorf("HISTORY_OUTPUT_SIZE must be compact or full, got %q", cfg.HistoryOutput)
	}
	syms := make([]domain.Symbol, 0, len(cfg.Symbols))
	for _, s := range cfg.Symbols {
		syms = append(syms, domain.NormalizeSymbol(s))
	}
	return application.PipelineConfig{
		Symbols:     syms,
		Demo:        cfg.DemoMode(),
		HistorySize: size,
	}, nil
}

func ProvideHTTPClient(cfg config.Config) *httpx.Client { return httpx.New(cfg.RequestTimeout) }

func ProvideQuoteProvider(cfg config.Config, hc *httpx.Client) application.QuoteProvider {
	return alphavantage.New(cfg.APIBase, cfg.APIKey, cfg.RequestTimeout, hc)
}

func ProvideDemoGenerator(cfg config.Config) application.DemoGenerator {
	return synthetic.NewGenerator(synthetic.NewRealRand(), synthetic.RealClock{}, cfg.DemoHistoryDays)
}

func ProvideSnapshotSink(cfg config.Config) application.SnapshotSink {
	return snapshot.NewFileSink(cfg.OutputFile)
}

// ProvideRedisMirror returns nil when REDIS_ADDR is unset.
func ProvideRedisMirror(cfg config.Config, log *zap.Logger) (*redisstore.SnapshotStore, func()) {
	if cfg.RedisAddr == "" {
		return nil, func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	cleanup := func() {
		log.Debug("closing redis")
		_ = client.Close()
	}
	return redisstore.New(client, cfg.RedisSnapshotKey, 0), cleanup
}

// ProvideDB returns nil when DATABASE_URL is unset. A configured but unreachable database is an error.
func ProvideDB(ctx context.Context, cfg config.Config, log *zap.Logger) (*pg.DB, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, func() {}, nil
	}
	db, err := pg.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, func() {}, fmt.Errorf("connect postgres: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, func() {}, fmt.Errorf("ping postgres: %w", err)
	}
	if err := pg.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, func() {}, err
	}
	cleanup := func() {
		log.Debug("closing pg")
		db.Close()
	}
	return db, cleanup, nil
}

func ProvideArchiveMirror(db *pg.DB) *application.ArchiveMirror {
	if db == nil {
		return nil
	}
	return application.NewArchiveMirror(pg.NewUnitOfWork(db), pg.NewArchiveRepo(db))
}

// ProvideKafkaPublisher returns nil when KAFKA_BROKERS is unset.
func ProvideKafkaPublisher(cfg config.Config, log *zap.Logger) (*kafkapub.Publisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		return nil, func() {}
	}
	p := kafkapub.NewPublisher(kafkapub.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
	cleanup := func() {
		if err := p.Close(); err != nil {
			log.Warn("kafka_close_failed", zap.Error(err))
		}
	}
	return p, cleanup
}

// ProvideHistoryExporter returns nil when EXPORT_FORMAT is unset.
func ProvideHistoryExporter(cfg config.Config) (*export.HistoryExporter, error) {
	if cfg.ExportFormat == "" {
		return nil, nil
	}
	return export.NewHistoryExporter(cfg.ExportDir, cfg.ExportFormat)
}

// ProvideMirrors drops the destinations that are not configured.
func ProvideMirrors(rs *redisstore.SnapshotStore, am *application.ArchiveMirror, kp *kafkapub.Publisher, he *export.HistoryExporter) Mirrors {
	var ms Mirrors
	if rs != nil {
		ms = append(ms, rs)
	}
	if am != nil {
		ms = append(ms, am)
	}
	if kp != nil {
		ms = append(ms, kp)
	}
	if he != nil {
		ms = append(ms, he)
	}
	return ms
}

func ProvidePipeline(
	pc application.PipelineConfig,
	qp application.QuoteProvider,
	dg application.DemoGenerator,
	sink application.SnapshotSink,
	ms Mirrors,
	log *zap.Logger,
) *application.Pipeline {
	return application.NewPipeline(pc, qp, dg, sink,
		application.WithLogger(log),
		application.WithMirrors(ms...),
	)
}
