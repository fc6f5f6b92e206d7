package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"gestured/internal/catalog"
	"gestured/internal/config"
	"gestured/internal/httpapi"
	"gestured/internal/manager"
	"gestured/internal/onnxrt"
	"gestured/internal/registry"
)

// newManager wires the catalog, runtime backend and manager for cfg.
func newManager(cfg config.Config, log zerolog.Logger) (*manager.Manager, *onnxrt.Backend, error) {
	be := onnxrt.NewBackend(onnxrt.Options{LibraryPath: cfg.ORTLibrary, IntraOpThreads: cfg.ORTThreads})
	if err := be.Err(); err != nil {
		log.Warn().Err(err).Msg("onnx runtime unavailable; models will fail to load")
	}
	descs, err := catalog.Enumerate(cfg.ModelsDir, cfg.Models)
	if err != nil {
		_ = be.Close()
		return nil, nil, err
	}
	if extra, err := registry.ScanArtifacts(cfg.ModelsDir, descs); err == nil && len(extra) > 0 {
		log.Info().Strs("files", extra).Msg("model files present but not in the catalog")
	}
	mgr := manager.NewWithConfig(manager.ManagerConfig{
		Catalog:             descs,
		Backend:             be,
		DefaultModel:        cfg.DefaultModel,
		CompareModels:       cfg.CompareModels,
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		Publisher:           manager.NewLogPublisher(log),
		Logger:              &log,
	})
	return mgr, be, nil
}

func runServe(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mgr, be, err := newManager(cfg, log)
	if err != nil {
		return err
	}
	defer be.Close()
	defer mgr.Close()

	httpapi.SetLogger(log)
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetMaxImagePixels(cfg.MaxImagePixels)
	httpapi.SetImageRoot(cfg.ImageRoot)
	httpapi.SetCORSOptions(*cfg.CORSEnabled, cfg.CORSOrigins, nil, nil)
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("models_dir", cfg.ModelsDir).Msg("gestured listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Build the registry while the listener is already answering /healthz;
	// /readyz flips once every model has been attempted.
	reg := mgr.Load()
	log.Info().Int("loaded", reg.Len()).Int("failed", len(reg.Failures())).Msg("model registry built")

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}

// runModels attempts every catalog model once and prints a status table.
// It fails with exit status 1 when nothing loaded.
func runModels(out io.Writer, cfg config.Config, log zerolog.Logger) error {
	mgr, be, err := newManager(cfg, log)
	if err != nil {
		return err
	}
	defer be.Close()
	defer mgr.Close()

	reg := mgr.Load()
	failed := reg.FailureMessages()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tSTATUS\tINPUT\tCLASSES\tDETAIL")
	for _, info := range reg.List() {
		fmt.Fprintf(tw, "%s\tloaded\t%v\t%d\t%d params\n", info.Name, info.InputShape, info.NumClasses, info.Params)
	}
	for _, name := range catalog.Names(mgr.Catalog()) {
		if msg, ok := failed[name]; ok {
			fmt.Fprintf(tw, "%s\tfailed\t-\t-\t%s\n", name, msg)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if reg.Len() == 0 {
		return exitError{code: 1}
	}
	return nil
}
