package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/cognicore/sift/internal/httpapi"
	"github.com/cognicore/sift/pkg/sift"
	"github.com/cognicore/sift/pkg/sift/config"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	modelPath := flag.String("model", "", "path to the model blob")
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	if *modelPath == "" {
		log.Fatal("--model required")
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal("Failed to load configuration:", err)
		}
	}

	engine, err := sift.New(sift.Options{ModelPath: *modelPath, Config: cfg})
	if err != nil {
		log.Fatal("Failed to load model:", err)
	}

	stats := engine.Model().Stats()
	log.Printf("Model loaded: %d unique tokens, prior P(spam)=%.3f",
		stats.UniqueTokens, stats.PriorSpam())

	server := httpapi.NewServer(engine)
	log.Printf("Listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, server.Router()))
}
