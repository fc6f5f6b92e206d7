package main

import (
	"github.com/spf13/cobra"

	"gestured/internal/config"
)

// buildRootCmd constructs the command tree. getenv feeds the environment
// layer so tests can run without touching the process environment.
func buildRootCmd(getenv func(string) string) *cobra.Command {
	root := &cobra.Command{
		Use:           "gestured",
		Short:         "Hand-gesture image classification service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringP("config", "c", "", "Config file (.yaml, .json or .toml)")
	pf.String("addr", config.DefaultAddr, "HTTP listen address (GESTURED_ADDR)")
	pf.String("models-dir", config.DefaultModelsDir, "Directory holding model artifacts (GESTURED_MODELS_DIR)")
	pf.String("default-model", config.DefaultModel, "Model used when a request names none (GESTURED_DEFAULT_MODEL)")
	pf.String("compare-models", "", "Comma-separated default comparison set (GESTURED_COMPARE_MODELS)")
	pf.Float64("confidence-threshold", config.DefaultThreshold, "Default confidence threshold in [0,1] (GESTURED_CONFIDENCE_THRESHOLD)")
	pf.String("ort-library", "", "Path to the onnxruntime shared library (GESTURED_ORT_LIBRARY)")
	pf.Int("ort-threads", 0, "Intra-op threads per model session, 0 for the runtime default")
	pf.String("log-level", config.DefaultLogLevel, "Log level: debug|info|warn|error (GESTURED_LOG_LEVEL)")
	pf.String("log-format", config.DefaultLogFormat, "Log format: json|console")
	pf.String("log-file", "", "Write logs to a rotating file instead of stderr (GESTURED_LOG_FILE)")
	pf.String("image-root", "", "Enable path predictions for files under this directory (GESTURED_IMAGE_ROOT)")

	serve := &cobra.Command{
		Use:     "serve",
		Short:   "Load models and serve the HTTP API",
		Example: "  gestured serve --models-dir ./models --addr :5000",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, getenv)
			if err != nil {
				return err
			}
			log, closeLog, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()
			return runServe(cmd.Context(), cfg, log)
		},
	}

	models := &cobra.Command{
		Use:     "models",
		Short:   "Load every catalog model once and report the outcome",
		Example: "  gestured models --models-dir ./models",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, getenv)
			if err != nil {
				return err
			}
			log, closeLog, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()
			return runModels(cmd.OutOrStdout(), cfg, log)
		},
	}

	root.AddCommand(serve, models)
	// Bare "gestured" serves.
	root.RunE = serve.RunE
	return root
}

// resolveConfig layers defaults < file < environment < explicit flags.
func resolveConfig(cmd *cobra.Command, getenv func(string) string) (config.Config, error) {
	f := cmd.Flags()
	var cfg config.Config
	if p, _ := f.GetString("config"); p != "" {
		c, err := config.Load(p)
		if err != nil {
			return cfg, err
		}
		cfg = c
	}
	cfg, err := config.ApplyEnv(cfg, getenv)
	if err != nil {
		return cfg, err
	}
	str := func(name string, dst *string) {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	str("addr", &cfg.Addr)
	str("models-dir", &cfg.ModelsDir)
	str("default-model", &cfg.DefaultModel)
	str("ort-library", &cfg.ORTLibrary)
	str("log-level", &cfg.LogLevel)
	str("log-format", &cfg.LogFormat)
	str("log-file", &cfg.LogFile)
	str("image-root", &cfg.ImageRoot)
	if f.Changed("compare-models") {
		v, _ := f.GetString("compare-models")
		cfg.CompareModels = config.SplitCSV(v)
		if cfg.CompareModels == nil {
			cfg.CompareModels = []string{}
		}
	}
	if f.Changed("confidence-threshold") {
		cfg.ConfidenceThreshold, _ = f.GetFloat64("confidence-threshold")
	}
	if f.Changed("ort-threads") {
		cfg.ORTThreads, _ = f.GetInt("ort-threads")
	}
	cfg = config.WithDefaults(cfg)
	return cfg, config.Validate(cfg)
}
