//go:build wireinject

package bootstrap

import (
	"context"

	"github.com/google/wire"

	"stock-snapshot/internal/application"
)

var fetchSet = wire.NewSet(
	ProvideLogger,
	ProvideConfig,
	ProvidePipelineConfig,
	ProvideHTTPClient,
	ProvideQuoteProvider,
	ProvideDemoGenerator,
	ProvideSnapshotSink,
)

var mirrorSet = wire.NewSet(
	ProvideRedisMirror,
	ProvideDB,
	ProvideArchiveMirror,
	ProvideKafkaPublisher,
	ProvideHistoryExporter,
	ProvideMirrors,
)

// InitPipeline builds the fetch pipeline with every configured mirror.
func InitPipeline(ctx context.Context) (*application.Pipeline, func(), error) {
	wire.Build(
		fetchSet,
		mirrorSet,
		ProvidePipeline,
	)
	return nil, nil, nil
}
