package main

import (
	"context"
	"math/rand"
	"time"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sign-vn/slsign/internal/alphabet"
	"github.com/sign-vn/slsign/internal/app/server"
	"github.com/sign-vn/slsign/internal/aws/storage"
	"github.com/sign-vn/slsign/internal/game"
	"github.com/sign-vn/slsign/internal/recognition"
	"github.com/sign-vn/slsign/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	defer logging.Sync()

	cfg := server.NewConfig()

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logging.Fatal("failed to load aws config", zap.Error(err))
	}
	storageClient := storage.NewClient(
		dynamodb.NewFromConfig(awsCfg),
		storage.DefaultConfig(),
	)

	if err := storageClient.SeedAlphabet(context.Background(), alphabet.SeedEntries()); err != nil {
		// The reference table is non-critical; the game still works without it.
		logging.Warn("failed to seed alphabet table", zap.Error(err))
	}

	recognitionClient, err := recognition.NewClient(cfg.RecognitionUrl)
	if err != nil {
		logging.Fatal("failed to create recognition client", zap.Error(err))
	}

	sentences := game.NewSentenceProvider(rand.NewSource(time.Now().UnixNano()))
	gameService := game.NewService(storageClient, storageClient, sentences)

	srv := server.NewServer(cfg, gameService, storageClient, recognitionClient)
	if err := srv.Start(); err != nil {
		logging.Fatal("server stopped", zap.Error(err))
	}
}
