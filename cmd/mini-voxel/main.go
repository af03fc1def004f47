package main

import (
	"errors"
	"flag"
	"net/http"
	"os"
	"runtime"

	"mini-voxel/internal/config"
	"mini-voxel/internal/profiling"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/xlab/closer"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	defer closer.Close()

	configPath := flag.String("config", "", "path to a YAML settings file")
	seed := flag.Int64("seed", 0, "world seed, 0 keeps the configured one")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true})

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.WithError(err).Fatal("load config")
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	level, _ := logrus.ParseLevel(cfg.Log.Level)
	log.SetLevel(level)

	if cfg.Metrics.Enabled {
		serveMetrics(log, cfg.Metrics.Addr)
	}

	game, err := newGame(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("start")
	}
	closer.Bind(func() {
		log.Info("shutting down")
	})
	defer game.dispose()

	game.run()
}

// serveMetrics exposes the Prometheus registry on addr until the process exits.
func serveMetrics(log logrus.FieldLogger, addr string) {
	srv := &http.Server{
		Addr:    addr,
		Handler: promhttp.HandlerFor(profiling.Registry(), promhttp.HandlerOpts{}),
	}
	closer.Bind(func() {
		_ = srv.Close()
	})
	go func() {
		log.WithField("addr", addr).Info("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server")
			os.Exit(1)
		}
	}()
}
