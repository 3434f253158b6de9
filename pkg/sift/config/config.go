package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds engine and trainer settings.
type Config struct {
	LaplaceSmoothingFactor float64  `yaml:"laplace_smoothing_factor"`
	SpamThreshold          float64  `yaml:"spam_threshold"`
	Languages              []string `yaml:"languages"`
	StripHTML              bool     `yaml:"strip_html"`
	Corpus                 Corpus   `yaml:"corpus"`
}

// Corpus names the table layout of SQLite training datasets.
type Corpus struct {
	Table       string `yaml:"table"`
	TextColumn  string `yaml:"text_column"`
	LabelColumn string `yaml:"label_column"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LaplaceSmoothingFactor: 1.0,
		SpamThreshold:          0.80,
		Languages:              []string{"english", "russian", "spanish", "french"},
		Corpus: Corpus{
			Table:       "samples",
			TextColumn:  "text",
			LabelColumn: "label",
		},
	}
}

// Load reads a YAML config file. Fields omitted from the file keep their
// Default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
