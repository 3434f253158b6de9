package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.LaplaceSmoothingFactor != 1.0 {
		t.Errorf("unexpected default alpha: %v", cfg.LaplaceSmoothingFactor)
	}
	if cfg.SpamThreshold != 0.80 {
		t.Errorf("unexpected default threshold: %v", cfg.SpamThreshold)
	}
	if len(cfg.Languages) == 0 {
		t.Error("expected default languages")
	}
	if cfg.Corpus.Table != "samples" {
		t.Errorf("unexpected default corpus table: %q", cfg.Corpus.Table)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sift.yaml")
	data := "spam_threshold: 0.6\ncorpus:\n  table: messages\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.SpamThreshold != 0.6 {
		t.Errorf("threshold not overridden: %v", cfg.SpamThreshold)
	}
	if cfg.Corpus.Table != "messages" {
		t.Errorf("corpus table not overridden: %q", cfg.Corpus.Table)
	}
	if cfg.LaplaceSmoothingFactor != 1.0 {
		t.Errorf("alpha should keep its default: %v", cfg.LaplaceSmoothingFactor)
	}
	if cfg.Corpus.TextColumn != "text" {
		t.Errorf("text column should keep its default: %q", cfg.Corpus.TextColumn)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("spam_threshold: [not a number"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}
