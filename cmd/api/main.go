package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/SaiyamJain468/Paylockr/internal/api/handlers"
	"github.com/SaiyamJain468/Paylockr/internal/api/middleware"
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

	log := logger.New("api", "")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log = logger.New("api", cfg.LogLevel)

	if cfg.GCSBucket == "" {
		log.Warn().Msg("No GCS bucket configured - document uploads will be disabled")
	}

	ctx := context.Background()

	store := gcs.NewClient()
	refiner := corrective.NewGeminiRefiner(cfg.CorrectiveOptions())
	service := pipeline.NewService(refiner, log)

	// Initialize job infrastructure
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(cfg.QueueSize, cfg.Workers, jobStore)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	jobHandler := func(ctx context.Context, job *jobs.NormalizeJob) error {
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

	go func() {
		log.Info().Msg("Starting job worker")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Job worker stopped with error")
		}
	}()

	// Initialize handlers
	normalizeHandler := handlers.NewNormalizeHandler(service, log)
	documentsHandler := handlers.NewDocumentsHandler(store, jobQueue, cfg.GCSBucket, log)
	jobsHandler := handlers.NewJobsHandler(jobStore, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/normalize/text", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			normalizeHandler.NormalizeText(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/normalize/rows", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			normalizeHandler.NormalizeRows(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/documents/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			documentsHandler.Upload(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/documents/normalize", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			documentsHandler.EnqueueNormalize(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobsHandler.ListJobs(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobID := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
			if jobID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
				return
			}
			jobsHandler.GetJob(w, r, jobID)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/healthz", handlers.Health)

	handler := middleware.Recovery(log)(
		middleware.RequestID(
			middleware.Logger(log)(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	log.Info().Msg("Server exited")
}
