// Command gpvdump prints a one-line description of every product in JMA
// GPV GRIB2 files, optionally followed by the decoded grids.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/techlier/wgpv/gpv"
	"github.com/techlier/wgpv/grib2"
	"github.com/techlier/wgpv/internal/config"
	"github.com/techlier/wgpv/internal/observability"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "YAML config file overlaying the environment")
	dumpData := flag.Bool("data", false, "dump decoded grid values")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <file or directory>...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	var srv *http.Server
	if cfg.MetricsAddr != "" {
		srv = startMetricsServer(cfg.MetricsAddr, logger)
	}

	parser := grib2.NewParser(
		grib2.WithLogger(logger),
		grib2.WithSyntaxChecking(cfg.SyntaxCheck),
		grib2.WithMaxSectionSize(cfg.MaxSectionSize),
		grib2.WithMetrics(metrics),
	)
	describer := gpv.NewDescriber(os.Stdout)
	parser.AddObserver(describer)
	if *dumpData {
		parser.AddObserver(gpv.NewDataDumper(os.Stdout, logger))
	}

	fp := gpv.NewFileParser(parser,
		gpv.WithSuffix(cfg.FileSuffix),
		gpv.WithBufferSize(cfg.BufferSize),
		gpv.WithLogger(logger),
		gpv.WithMetrics(metrics),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	status := 0
	for _, root := range flag.Args() {
		files, err := fp.ParseAll(ctx, root)
		if err != nil {
			logger.Error("parse failed", "path", root, "files", files, "error", err)
			status = 1
			if ctx.Err() != nil {
				break
			}
			continue
		}
		logger.Info("parsed", "path", root, "files", files)
	}
	if err := describer.Err(); err != nil {
		logger.Error("write failed", "error", err)
		status = 1
	}

	reportUnknownCodes(parser.Diagnostics(), logger)

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", "error", err)
		}
	}
	return status
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

func startMetricsServer(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", addr)
	return srv
}

// reportUnknownCodes logs every code table value that did not resolve, so
// the catalog can be extended.
func reportUnknownCodes(diag *grib2.Diagnostics, logger *slog.Logger) {
	unknown := diag.UnknownCodes()
	tables := make([]grib2.Table, 0, len(unknown))
	for t := range unknown {
		tables = append(tables, t)
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i] < tables[j] })
	for _, t := range tables {
		logger.Warn("unknown code values", "table", t.String(), "values", unknown[t])
	}
}
