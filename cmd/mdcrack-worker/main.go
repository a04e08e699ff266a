// Command mdcrack-worker is the stateless HTTP worker ("minion"): it
// serves POST /crack-range, POST /cancel-job, and GET /health (spec
// section 6.2).
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apihttp "github.com/NoaAzoulay/passwords-cracker/internal/api/http"
	"github.com/NoaAzoulay/passwords-cracker/internal/api/recovery"
	"github.com/NoaAzoulay/passwords-cracker/internal/cancelset"
	"github.com/NoaAzoulay/passwords-cracker/internal/config"
	"github.com/NoaAzoulay/passwords-cracker/internal/logger"
	"github.com/NoaAzoulay/passwords-cracker/internal/scheme"
	"github.com/NoaAzoulay/passwords-cracker/internal/workerexec"
)

func main() {
	port := flag.Int("port", 0, "Override WORKER_PORT")
	flag.Parse()

	log := logger.New("mdcrack-worker")

	cfg, err := config.NewWorkerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if *port != 0 {
		cfg.Port = *port
	}

	cancels := cancelset.New()
	exec := workerexec.New(workerexec.Config{
		WorkerThreads:          cfg.WorkerThreads,
		ParallelThreshold:      cfg.ParallelThreshold,
		CancellationCheckEvery: cfg.CancellationCheckEvery,
		SubrangeMinSize:        cfg.MinionSubrangeMinSize,
	}, cancels)

	handler := apihttp.NewWorkerHandler(exec, cancels, scheme.NewRegistry(), log)
	router := apihttp.NewRouter()
	handler.Register(router)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      recovery.Middleware(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("worker HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("worker HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal().Err(err).Msg("worker forced to shutdown")
	}
	log.Info().Msg("worker exited")
}
