package main

import (
	"bytes"
	"context"
	"flag"

	"github.com/veritaslab/veritas/internal/config"
	"github.com/veritaslab/veritas/internal/logger"
	"github.com/veritaslab/veritas/internal/model"
	"github.com/veritaslab/veritas/internal/storage"
	"github.com/veritaslab/veritas/internal/trainer"
)

func main() {
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "text",
		ServiceName: "veritas-train",
	})
	logger.SetDefaultLogger(appLogger)

	authenticSrc := flag.String("authentic", "./data/corpus/authentic.csv", "Authentic articles CSV (path or URL)")
	fabricatedSrc := flag.String("fabricated", "./data/corpus/fabricated.csv", "Fabricated articles CSV (path or URL)")
	initEncoder := flag.Bool("init-encoder", false, "Also derive and store a fresh encoder artifact from the corpus")
	dims := flag.Int("dims", 768, "Encoder dimensions when deriving a fresh encoder")
	maxTokens := flag.Int("max-tokens", 256, "Encoder token window when deriving a fresh encoder")
	vocabSize := flag.Int("vocab-size", 30000, "Vocabulary size when deriving a fresh encoder")
	epochs := flag.Int("epochs", 200, "Fitting epochs")
	learningRate := flag.Float64("lr", 0.5, "Fitting learning rate")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	store, err := storage.NewArtifactStore(&cfg.Model)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize artifact store")
	}

	ctx := context.Background()

	appLogger.Info("Loading corpus")
	samples, err := trainer.LoadCorpus(ctx, *authenticSrc, *fabricatedSrc)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load corpus")
	}
	appLogger.WithField("samples", len(samples)).Info("Corpus loaded")

	if *initEncoder {
		appLogger.Info("Deriving encoder artifact from corpus")
		encArtifact := trainer.BuildEncoderArtifact(samples, *dims, *maxTokens, *vocabSize)
		if err := storeArtifact(ctx, store, cfg.Model.EncoderKey, func(buf *bytes.Buffer) error {
			return model.WriteEncoderArtifact(buf, encArtifact)
		}); err != nil {
			appLogger.WithError(err).Fatal("Failed to store encoder artifact")
		}
		appLogger.WithField("key", cfg.Model.EncoderKey).Info("Encoder artifact stored")
	}

	encReader, err := store.Fetch(ctx, cfg.Model.EncoderKey)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to fetch encoder artifact")
	}
	encArtifact, err := model.ReadEncoderArtifact(encReader)
	encReader.Close()
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to read encoder artifact")
	}
	encoder, err := model.NewEncoder(encArtifact)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to build encoder")
	}

	trainerCfg := trainer.DefaultConfig()
	trainerCfg.Epochs = *epochs
	trainerCfg.LearningRate = *learningRate

	clsArtifact, metrics, err := trainer.New(encoder, trainerCfg).Run(ctx, samples)
	if err != nil {
		appLogger.WithError(err).Fatal("Fitting failed")
	}

	if err := storeArtifact(ctx, store, cfg.Model.ClassifierKey, func(buf *bytes.Buffer) error {
		return model.WriteClassifierArtifact(buf, clsArtifact)
	}); err != nil {
		appLogger.WithError(err).Fatal("Failed to store classifier artifact")
	}

	appLogger.WithFields(logger.Fields{
		"key":      cfg.Model.ClassifierKey,
		"accuracy": metrics.Accuracy,
		"f1":       metrics.F1,
	}).Info("Classifier artifact stored")
}

func storeArtifact(ctx context.Context, store storage.ArtifactStore, key string, write func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	return store.Store(ctx, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()))
}
