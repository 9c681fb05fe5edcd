package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SaiyamJain468/Paylockr/internal/config"
	"github.com/SaiyamJain468/Paylockr/internal/corrective"
	"github.com/SaiyamJain468/Paylockr/internal/gcs"
	"github.com/SaiyamJain468/Paylockr/internal/jobs"
	"github.com/SaiyamJain468/Paylockr/internal/jobs/inmemory"
	"github.com/SaiyamJain468/Paylockr/internal/logger"
	"github.com/SaiyamJain468/Paylockr/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	flag.Parse()

	log := logger.New("worker", "")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log = logger.New("worker", cfg.LogLevel)

	store := gcs.NewClient()
	refiner := corrective.NewGeminiRefiner(cfg.CorrectiveOptions())

	// In production, this would be replaced with Cloud Tasks or Pub/Sub
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(cfg.QueueSize, cfg.Workers, jobStore)

	log.Info().Msg("Starting worker service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := func(ctx context.Context, job *jobs.NormalizeJob) error {
		log.Info().
			Str("job_id", job.JobID).
			Str("document_id", job.DocumentID).
			Str("source_uri", job.SourceURI).
			Msg("Processing normalization job")

		result, err := pipeline.NormalizeDocument(ctx, store, refiner, log, job.SourceURI)
		if err != nil {
			log.Error().
				Err(err).
				Str("job_id", job.JobID).
				Str("document_id", job.DocumentID).
				Msg("Pipeline execution failed")
			return err
		}

		job.Result = &result

		log.Info().
			Str("job_id", job.JobID).
			Str("document_id", job.DocumentID).
			Int("transactions", len(result.Transactions)).
			Float64("confidence", result.Confidence).
			Msg("Normalization completed")

		return nil
	}

	if err := jobQueue.Start(ctx, handler); err != nil {
		log.Fatal().Err(err).Msg("Failed to start job consumer")
	}

	log.Info().Msg("Worker service started, waiting for jobs...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down worker service...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during graceful shutdown")
	}

	log.Info().Msg("Worker service exited")
}
