package sift

import (
	"github.com/cognicore/sift/pkg/sift/classify"
	"github.com/cognicore/sift/pkg/sift/config"
	"github.com/cognicore/sift/pkg/sift/model"
	"github.com/cognicore/sift/pkg/sift/tokenize"
)

// Engine bundles the shared immutable model with a tokenizer and the
// configured classifier defaults. Load one per process and share it by
// reference; every classification is a pure read-only computation, so
// concurrent use needs no locking.
type Engine struct {
	model     *model.Model
	tokenizer *tokenize.Tokenizer
	cfg       config.Config
}

// Options configures an Engine.
type Options struct {
	ModelBytes []byte // serialized model blob, e.g. embedded in the binary
	ModelPath  string // read from disk when ModelBytes is nil
	Config     config.Config
}

// New builds an Engine from opts. With neither ModelBytes nor ModelPath an
// empty model is used and every classification scores the 0.5 prior. A
// zero-valued Config is replaced by config.Default().
func New(opts Options) (*Engine, error) {
	cfg := opts.Config
	if cfg.Languages == nil && cfg.SpamThreshold == 0 && cfg.LaplaceSmoothingFactor == 0 {
		cfg = config.Default()
	}

	var (
		m   *model.Model
		err error
	)
	switch {
	case opts.ModelBytes != nil:
		m, err = model.Load(opts.ModelBytes)
	case opts.ModelPath != "":
		m, err = model.LoadFile(opts.ModelPath)
	default:
		m, err = model.Build(nil)
	}
	if err != nil {
		return nil, err
	}

	tok, err := tokenize.New(cfg.Languages)
	if err != nil {
		return nil, err
	}

	return &Engine{model: m, tokenizer: tok, cfg: cfg}, nil
}

// Model returns the shared immutable model.
func (e *Engine) Model() *model.Model {
	return e.model
}

// Tokenizer returns the shared tokenizer.
func (e *Engine) Tokenizer() *tokenize.Tokenizer {
	return e.tokenizer
}

// Config returns the engine's configured defaults.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Classifier returns a fresh classifier over the shared model with the
// engine's configured defaults applied. Classifiers are cheap; create one
// per request when its parameters need to differ.
func (e *Engine) Classifier() *classify.Classifier {
	c := classify.New(e.model, e.tokenizer)
	c.SetAlpha(e.cfg.LaplaceSmoothingFactor)
	c.SetSpamThreshold(e.cfg.SpamThreshold)
	return c
}

// Classify scores text with the engine defaults.
func (e *Engine) Classify(text string) float64 {
	return e.Classifier().Classify(text)
}

// ClassifyDetailed classifies text with the engine defaults and returns
// the detailed verdict.
func (e *Engine) ClassifyDetailed(text string) classify.Result {
	return e.Classifier().ClassifyDetailed(text)
}
