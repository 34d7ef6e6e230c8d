// Command dahextractor converts Designated Airspace Handbook documents to
// the VATGlasses JSON interchange format. It runs either as an HTTP service
// with persisted conversion history, or in one-shot mode converting a
// single file from the command line.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/RealLeviticus/dahextractor/internal/api"
	"github.com/RealLeviticus/dahextractor/internal/config"
	"github.com/RealLeviticus/dahextractor/internal/conversion"
	"github.com/RealLeviticus/dahextractor/internal/storage/sqlite"
	"github.com/RealLeviticus/dahextractor/internal/vatglasses"
	"github.com/RealLeviticus/dahextractor/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML configuration file")
	inputPath := flag.String("input", "", "convert a single file and exit instead of serving")
	outputPath := flag.String("output", "", "output file for one-shot mode (default: stdout)")
	formatHint := flag.String("format", "", "format hint for one-shot mode: csv, json, text, pdf-extracted")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	converter := vatglasses.NewConverter(vatglasses.Options{
		DefaultFrequency: cfg.Converter.DefaultFrequency,
		TypeMappings:     cfg.Converter.TypeMappings,
		CityNames:        cfg.Converter.CityNames,
		PositionPrefixes: cfg.Converter.PositionPrefixes,
	}, log)

	if *inputPath != "" {
		if err := runOnce(converter, log, *inputPath, *outputPath, *formatHint); err != nil {
			log.Error("Conversion failed", logger.Error(err))
			os.Exit(1)
		}
		return
	}

	if err := runServer(cfg, converter, log); err != nil {
		log.Error("Server failed", logger.Error(err))
		os.Exit(1)
	}
}

// runOnce converts a single file without persistence
func runOnce(converter *vatglasses.Converter, log *logger.Logger, inputPath, outputPath, formatHint string) error {
	text, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	service := conversion.NewService(converter, nil, 0, log)
	result, err := service.Convert(conversion.Request{
		Source:     filepath.Base(inputPath),
		Text:       string(text),
		FormatHint: formatHint,
	})
	if err != nil {
		return err
	}

	for _, warning := range result.Validation.Warnings {
		log.Warn("Validation warning", logger.String("warning", warning))
	}

	pretty, err := json.MarshalIndent(json.RawMessage(result.Output), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if outputPath == "" {
		fmt.Println(string(pretty))
		return nil
	}

	if err := os.WriteFile(outputPath, pretty, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	log.Info("Wrote VATGlasses output",
		logger.String("path", outputPath),
		logger.Int("airspace", result.Record.AirspaceCount))
	return nil
}

// runServer runs the HTTP API with sqlite-backed conversion history
func runServer(cfg *config.Config, converter *vatglasses.Converter, log *logger.Logger) error {
	db, err := sqlite.Open(cfg.Storage.SQLitePath)
	if err != nil {
		return err
	}
	defer db.Close()

	store := sqlite.NewConversionStorage(db, log)
	cacheTTL := time.Duration(cfg.Storage.CacheTTLMinutes) * time.Minute
	service := conversion.NewService(converter, store, cacheTTL, log)

	router := api.NewRouter(service, cfg, log)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("Shutting down", logger.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
