package main

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/raywall/user-storage-api/pkg/blobstore"
	"github.com/raywall/user-storage-api/pkg/config"
	"github.com/raywall/user-storage-api/pkg/docstore"
	"github.com/raywall/user-storage-api/pkg/httpapi"
	"github.com/raywall/user-storage-api/pkg/logger"
	"github.com/raywall/user-storage-api/pkg/metrics"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("falha no boot")
	}
}

// run contém a lógica principal testável
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log.Logger = logger.Configure(cfg.LogLevel, cfg.LogFormat)

	awsCfg, err := loadAWSConfig(ctx, cfg.AWS)
	if err != nil {
		return err
	}

	dynClient := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.AWS.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AWS.Endpoint)
		}
	})
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.AWS.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AWS.Endpoint)
			o.UsePathStyle = true
		}
	})

	users := docstore.New(dynClient, cfg.UsersTable)
	objects := blobstore.New(s3Client)

	provider, err := metrics.Setup(cfg.StatsdAddr)
	if err != nil {
		log.Warn().Err(err).Msg("métricas desabilitadas")
		provider = &metrics.NoopProvider{}
	}

	// Probe de boot é best-effort: falha é logada e o processo segue,
	// deixando as rotas falharem individualmente.
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := users.Probe(probeCtx); err != nil {
		log.Error().Err(err).Msg("document store inacessível no boot")
	} else {
		log.Info().Str("table", cfg.UsersTable).Msg("document store conectado")
	}

	return httpapi.New(users, objects, provider).Start(cfg.Port)
}

func loadAWSConfig(ctx context.Context, c config.AWSConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.Region),
	}
	if c.AccessKeyID != "" && c.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, ""),
		))
	}
	return awsconfig.LoadDefaultConfig(ctx, opts...)
}
