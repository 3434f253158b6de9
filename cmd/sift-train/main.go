package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cognicore/sift/pkg/sift/config"
	"github.com/cognicore/sift/pkg/sift/corpus"
	"github.com/cognicore/sift/pkg/sift/model"
	"github.com/cognicore/sift/pkg/sift/tokenize"
	"github.com/cognicore/sift/pkg/sift/train"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(2)
	}
	inputPath := flag.Arg(0)
	outputPath := flag.Arg(1)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal("Failed to load configuration:", err)
		}
	}

	tokenizer, err := tokenize.New(cfg.Languages)
	if err != nil {
		log.Fatal("Failed to build tokenizer:", err)
	}

	// Extend the existing model when the output path already holds one.
	var prior *model.Model
	if _, err := os.Stat(outputPath); err == nil {
		log.Println("Loading existing model...")
		if prior, err = model.LoadFile(outputPath); err != nil {
			log.Fatal("Failed to load existing model:", err)
		}
	}

	log.Println("Reading training dataset...")
	src, err := corpus.Open(context.Background(), inputPath, corpus.TableSpec{
		Table:       cfg.Corpus.Table,
		TextColumn:  cfg.Corpus.TextColumn,
		LabelColumn: cfg.Corpus.LabelColumn,
	})
	if err != nil {
		log.Fatal("Failed to open dataset:", err)
	}
	defer src.Close()

	var source corpus.Source = src
	if cfg.StripHTML {
		source = corpus.StripHTMLSource{Source: src}
	}

	trainer := train.New(tokenizer)
	m, report, err := trainer.Run(source, prior)
	if err != nil {
		log.Fatal("Training failed:", err)
	}

	printReport(report)

	if err := os.WriteFile(outputPath, m.Bytes(), 0o644); err != nil {
		log.Fatal("Failed to write model:", err)
	}
	log.Printf("Model saved to: %s", outputPath)

	validate(outputPath)
}

func printReport(r train.Report) {
	log.Println("=== Training Statistics ===")
	log.Printf("Run ID: %s", r.RunID)
	log.Printf("Total samples: %d", r.TotalSamples)
	if r.TotalSamples > 0 {
		log.Printf("Spam samples: %d (%.1f%%)", r.SpamSamples,
			float64(r.SpamSamples)/float64(r.TotalSamples)*100)
		log.Printf("Ham samples: %d (%.1f%%)", r.HamSamples,
			float64(r.HamSamples)/float64(r.TotalSamples)*100)
	}
	log.Printf("Total tokens: %d", r.TotalTokens)
	log.Printf("Unique tokens: %d", r.UniqueTokens)
	log.Printf("Average tokens per sample: %.1f", r.AvgTokensPerSample)
}

// validate reloads the freshly written blob and recomputes aggregate stats
// as an integrity check.
func validate(path string) {
	m, err := model.LoadFile(path)
	if err != nil {
		log.Fatal("Model validation failed:", err)
	}
	stats := m.Stats()

	log.Println("=== Model Validation ===")
	log.Printf("Total spam tokens in model: %d", stats.TotalSpam)
	log.Printf("Total ham tokens in model: %d", stats.TotalHam)
	log.Printf("Unique tokens in model: %d", stats.UniqueTokens)
	log.Printf("Model size: %.2f MB", float64(len(m.Bytes()))/1024/1024)
	log.Printf("Prior P(spam): %.3f", stats.PriorSpam())
	log.Printf("Prior P(ham): %.3f", stats.PriorHam())
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: sift-train [flags] <dataset> <model-output>")
	fmt.Fprintln(os.Stderr, "Dataset is a CSV file (text,label columns) or a SQLite database.")
	fmt.Fprintln(os.Stderr, "If the output already exists it is extended, not overwritten.")
	flag.PrintDefaults()
}
