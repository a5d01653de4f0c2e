package job

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

const defaultWarmInterval = time.Hour

type DirectoryWarmer interface {
	Warm(ctx context.Context) (int, error)
}

// DirectoryJob keeps the resolver's coin directory loaded so fuzzy lookups
// on the request path rarely pay for the full listing download.
type DirectoryJob struct {
	tracer   trace.Tracer
	warmer   DirectoryWarmer
	interval time.Duration
}

func NewDirectoryJob(tracer trace.Tracer, warmer DirectoryWarmer, interval time.Duration) *DirectoryJob {
	if interval <= 0 {
		interval = defaultWarmInterval
	}
	return &DirectoryJob{tracer: tracer, warmer: warmer, interval: interval}
}

// Start runs once immediately, then on every tick. Blocks until ctx is
// cancelled.
func (j *DirectoryJob) Start(ctx context.Context) {
	if j.warmer == nil {
		log.Info().Msg("directory job disabled: no warmer")
		<-ctx.Done()
		return
	}

	j.runOnce(ctx)
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

func (j *DirectoryJob) runOnce(ctx context.Context) {
	ctx, span := j.tracer.Start(ctx, "directory-job.run-once")
	defer span.End()

	n, err := j.warmer.Warm(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Warn().Err(err).Msg("coin directory warm failed")
		}
		return
	}
	log.Debug().Int("coins", n).Msg("coin directory warm")
}
