package seed

import (
	"context"
	"encoding/json"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Loader implements Loader for seed files stored in S3.
type s3Loader struct {
	client *s3.Client
	bucket string
	logger zerolog.Logger
}

// NewS3Loader creates a seed loader that reads from an S3 bucket.
func NewS3Loader(ctx context.Context, region, bucket string, logger zerolog.Logger) (Loader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &s3Loader{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		logger: logger.With().Str("component", "seed-s3-loader").Logger(),
	}, nil
}

// Load fetches and parses a JSON seed object from the configured bucket.
func (l *s3Loader) Load(ctx context.Context, key string) (*Data, error) {
	l.logger.Info().Str("bucket", l.bucket).Str("key", key).Msg("loading seed data from S3")

	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &l.bucket,
		Key:    &key,
	})
	if err != nil {
		l.logger.Error().Err(err).Str("bucket", l.bucket).Str("key", key).Msg("failed to fetch seed object")
		return nil, fmt.Errorf("failed to fetch seed object s3://%s/%s: %w", l.bucket, key, err)
	}
	defer out.Body.Close()

	var data Data
	if err := json.NewDecoder(out.Body).Decode(&data); err != nil {
		l.logger.Error().Err(err).Str("key", key).Msg("failed to parse seed object")
		return nil, fmt.Errorf("failed to parse seed object %s: %w", key, err)
	}

	l.logger.Info().
		Str("key", key).
		Int("categories", len(data.Categories)).
		Int("tags", len(data.Tags)).
		Int("products", len(data.Products)).
		Msg("seed data loaded from S3")

	return &data, nil
}

// fallbackLoader tries a primary loader and falls back to a secondary one
// when the primary fails.
type fallbackLoader struct {
	primary      Loader
	fallback     Loader
	fallbackPath string
	logger       zerolog.Logger
}

// NewFallbackLoader wraps a primary loader with a local-file fallback.
func NewFallbackLoader(primary, fallback Loader, fallbackPath string, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		primary:      primary,
		fallback:     fallback,
		fallbackPath: fallbackPath,
		logger:       logger.With().Str("component", "seed-fallback-loader").Logger(),
	}
}

// Load attempts the primary loader first, then the fallback.
func (l *fallbackLoader) Load(ctx context.Context, path string) (*Data, error) {
	data, err := l.primary.Load(ctx, path)
	if err == nil {
		return data, nil
	}

	l.logger.Warn().Err(err).Str("fallback", l.fallbackPath).Msg("primary seed loader failed, using fallback")
	return l.fallback.Load(ctx, l.fallbackPath)
}
