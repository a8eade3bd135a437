package service

import (
	"context"
	"time"

	"github.com/kdduha/genai-relay/internal/config"
	"github.com/kdduha/genai-relay/internal/llm"
	"github.com/kdduha/genai-relay/internal/metrics"
	"github.com/kdduha/genai-relay/internal/models"
	"github.com/rs/zerolog"
)

type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

type GenerateService struct {
	logger    zerolog.Logger
	generator llm.Generator
	provider  string
	modelName string
	cache     Cache
}

func NewGenerateService(logger zerolog.Logger, generator llm.Generator, cfg config.ModelConfig) *GenerateService {
	return &GenerateService{
		logger:    logger,
		generator: generator,
		provider:  cfg.Provider,
		modelName: cfg.Name,
	}
}

func (s *GenerateService) SetCacheClient(cache Cache) {
	s.cache = cache
}

// Generate forwards req to the model. Model errors are returned as is so
// callers can surface the provider's message.
func (s *GenerateService) Generate(ctx context.Context, req *models.GenerationRequest) (*models.GenerationResult, error) {
	parts := buildParts(req)

	log := s.logger.With().Str("modality", string(req.Modality)).Logger()
	if req.File != nil {
		log = log.With().
			Str("file", req.File.Filename).
			Str("mime_type", req.MIMEType).
			Int("size", len(req.File.Data)).
			Logger()
		metrics.AttachmentsTotal(string(req.Modality), req.MIMEType)
	}

	var key string
	if s.cache != nil {
		key = getCacheKey(s.provider+"/"+s.modelName, parts)
		cached, found, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.CacheLookup("error")
			log.Warn().Err(err).Msg("cache get error")
		case found:
			metrics.CacheLookup("hit")
			log.Debug().Msg("served from cache")
			return &models.GenerationResult{Result: cached}, nil
		default:
			metrics.CacheLookup("miss")
		}
	}

	start := time.Now()
	text, err := s.generator.Generate(ctx, parts)
	duration := time.Since(start)
	if err != nil {
		metrics.ModelRequestDuration(s.provider, "error", duration)
		log.Error().Err(err).Dur("duration", duration).Msg("model call failed")
		return nil, err
	}
	metrics.ModelRequestDuration(s.provider, "ok", duration)
	log.Info().Dur("duration", duration).Int("result_len", len(text)).Msg("model call finished")

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, text); err != nil {
			log.Warn().Err(err).Msg("failed to set cache")
		}
	}
	return &models.GenerationResult{Result: text}, nil
}
