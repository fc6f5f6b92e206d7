package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// parse runs the flag parser for the models subcommand without executing it.
func parse(t *testing.T, env map[string]string, args ...string) (*cobra.Command, func(string) string) {
	t.Helper()
	getenv := func(k string) string { return env[k] }
	root := buildRootCmd(getenv)
	cmd, rest, err := root.Find(append([]string{"models"}, args...))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if err := cmd.ParseFlags(rest); err != nil {
		t.Fatalf("parse: %v", err)
	}
	return cmd, getenv
}

func TestResolveConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(p, []byte("addr: \":7000\"\nmodels_dir: /from/file\ndefault_model: hagrid\nconfidence_threshold: 0.3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	env := map[string]string{"GESTURED_MODELS_DIR": "/from/env", "GESTURED_CONFIDENCE_THRESHOLD": "0.4"}
	getenv := func(k string) string { return env[k] }

	root := buildRootCmd(getenv)
	root.SetArgs([]string{"models", "--config", p, "--confidence-threshold", "0.9"})
	var got struct {
		addr, dir, model string
		th               float64
	}
	models, _, err := root.Find([]string{"models"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	models.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd, getenv)
		if err != nil {
			return err
		}
		got.addr, got.dir, got.model, got.th = cfg.Addr, cfg.ModelsDir, cfg.DefaultModel, cfg.ConfidenceThreshold
		return nil
	}
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got.addr != ":7000" || got.dir != "/from/env" || got.model != "hagrid" || got.th != 0.9 {
		t.Fatalf("got %+v", got)
	}
}

func TestResolveConfig_Defaults(t *testing.T) {
	cmd, getenv := parse(t, nil)
	cfg, err := resolveConfig(cmd, getenv)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Addr != ":5000" || cfg.DefaultModel != "asl_alphabet" || len(cfg.CompareModels) != 2 || cfg.ConfidenceThreshold != 0.5 {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestResolveConfig_CompareFlagAndValidation(t *testing.T) {
	cmd, getenv := parse(t, nil, "--compare-models", "hagrid, sign_mnist")
	cfg, err := resolveConfig(cmd, getenv)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if strings.Join(cfg.CompareModels, ",") != "hagrid,sign_mnist" {
		t.Fatalf("compare=%v", cfg.CompareModels)
	}
	cmd, getenv = parse(t, nil, "--confidence-threshold", "2")
	if _, err := resolveConfig(cmd, getenv); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestModelsCommand_NoModelsExitsOne(t *testing.T) {
	dir := t.TempDir()
	root := buildRootCmd(func(string) string { return "" })
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"models", "--models-dir", dir, "--log-level", "error"})
	err := root.Execute()
	ee, ok := err.(exitError)
	if !ok || ee.code != 1 {
		t.Fatalf("err=%v", err)
	}
	text := out.String()
	for _, name := range []string{"asl_alphabet", "sign_mnist", "hagrid"} {
		if !strings.Contains(text, name) || !strings.Contains(text, "failed") {
			t.Fatalf("missing %s in:\n%s", name, text)
		}
	}
}
