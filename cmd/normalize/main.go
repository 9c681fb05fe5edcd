package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/SaiyamJain468/Paylockr/internal/config"
	"github.com/SaiyamJain468/Paylockr/internal/corrective"
	"github.com/SaiyamJain468/Paylockr/internal/extract"
	"github.com/SaiyamJain468/Paylockr/internal/logger"
	"github.com/SaiyamJain468/Paylockr/internal/pipeline"
)

// normalize reads a statement (PDF or plain text) from a file or stdin
// and prints the normalization result as JSON.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "Path to YAML config file (optional)")
		inputPath  = flag.String("file", "", "Statement file to normalize (default: stdin)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := logger.New("normalize", cfg.LogLevel)

	var data []byte
	if *inputPath != "" {
		data, err = os.ReadFile(*inputPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", *inputPath, err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	text, err := extract.Text(data)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}

	refiner := corrective.NewGeminiRefiner(cfg.CorrectiveOptions())
	service := pipeline.NewService(refiner, log)

	result := service.NormalizeText(context.Background(), text)

	log.Info().
		Int("transactions", len(result.Transactions)).
		Float64("confidence", result.Confidence).
		Msg("Normalization finished")

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Println(string(out))

	return nil
}
