package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/lexical"
	"github.com/jonathan/skillmatch/internal/llm"
	"github.com/jonathan/skillmatch/internal/ranking"
	"github.com/jonathan/skillmatch/internal/semantic"
	"github.com/jonathan/skillmatch/internal/skills"
)

// components are the configured scorers plus the resources they hold open
type components struct {
	extractor *skills.Extractor
	engine    *ranking.Engine
	closers   []func() error
}

// Close releases the LLM client and redis connection, if any.
func (c *components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		_ = c.closers[i]()
	}
}

// buildComponents wires optional capabilities from cfg. Embeddings and the
// LLM tagger share one Gemini client; a redis_url puts a cache in front of
// the embedder. An unreachable redis only disables the cache.
func buildComponents(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*components, error) {
	c := &components{}

	var embedder llm.Embedder = llm.NopEmbedder{}
	var tagger skills.Tagger = skills.NopTagger{}

	if cfg.UseEmbeddings || cfg.UseLLMTagger {
		llmConfig := llm.DefaultConfig()
		llmConfig.EmbeddingModel = cfg.EmbeddingModel

		client, err := llm.NewGeminiClient(ctx, llmConfig, cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		c.closers = append(c.closers, client.Close)

		if cfg.UseEmbeddings {
			embedder = client
			if cfg.RedisURL != "" {
				rdb, err := llm.NewRedisClient(ctx, cfg.RedisURL)
				if err != nil {
					logger.Warn("embedding cache disabled", zap.Error(err))
				} else {
					c.closers = append(c.closers, rdb.Close)
					embedder = llm.NewCachedEmbedder(client, rdb, cfg.EmbeddingModel, cfg.EmbeddingCacheTTL, logger)
				}
			}
		}
		if cfg.UseLLMTagger {
			tagger = skills.NewLLMTagger(client, llm.ModelTier(cfg.TaggerModelTier))
		}
	}

	var weighter lexical.Weighter = lexical.NewTFIDF(lexical.DefaultTFIDFConfig())
	if cfg.DisableTFIDF {
		weighter = lexical.NopWeighter{}
	}

	c.extractor = skills.NewExtractor(
		skills.WithTagger(tagger),
		skills.WithTaggerTimeout(cfg.TaggerTimeout),
		skills.WithLogger(logger),
	)
	engine, err := ranking.NewEngine(
		ranking.WithExtractor(c.extractor),
		ranking.WithLexicalScorer(lexical.NewScorer(lexical.WithWeighter(weighter), lexical.WithLogger(logger))),
		ranking.WithSemanticScorer(semantic.NewScorer(
			semantic.WithEmbedder(embedder),
			semantic.WithTimeout(cfg.EmbeddingTimeout),
			semantic.WithLogger(logger),
		)),
		ranking.WithLogger(logger),
	)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.engine = engine
	return c, nil
}
