package usecase

import (
	"log"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/jeanlozanor/simple-backend/internal/domain"
)

// defaultCorrectionThreshold is the minimum token-set ratio (0-100) a
// vocabulary entry must score before it replaces the user's query.
const defaultCorrectionThreshold = 80

// defaultVocabulary lists common brand, category and modifier terms queries
// are corrected against when no vocabulary is injected.
var defaultVocabulary = []string{
	"iphone", "samsung", "huawei", "xiaomi", "motorola", "nokia",
	"sony", "lg", "panasonic", "tcl", "acer", "asus", "hp", "lenovo",
	"celular", "smartphone", "tablet", "laptop", "televisor", "tv",
	"auriculares", "headphones", "smartwatch", "watch", "mica", "protector",
	"cargador", "cable", "bateria", "funda", "case",
	"pura", "pro", "ultra", "max", "plus", "lite", "se",
}

// CorrectorConfig holds configuration for the query corrector.
type CorrectorConfig struct {
	Vocabulary []string
	Threshold  int
	Debug      bool
}

// QueryCorrector rewrites likely-misspelled queries to the closest vocabulary
// term. It never rejects a query: when nothing scores above the threshold the
// original query passes through unchanged.
type QueryCorrector struct {
	vocabulary []string
	threshold  int
	debug      bool
}

// NewQueryCorrector creates a corrector, falling back to the built-in
// vocabulary and threshold when the config leaves them unset.
func NewQueryCorrector(config CorrectorConfig) *QueryCorrector {
	vocabulary := config.Vocabulary
	if len(vocabulary) == 0 {
		vocabulary = defaultVocabulary
	}

	threshold := config.Threshold
	if threshold <= 0 {
		threshold = defaultCorrectionThreshold
	}

	return &QueryCorrector{
		vocabulary: vocabulary,
		threshold:  threshold,
		debug:      config.Debug,
	}
}

// Correct returns the vocabulary entry closest to query when the best
// token-set similarity exceeds the threshold, otherwise the query unchanged.
// An exact (case-insensitive) vocabulary hit short-circuits.
func (c *QueryCorrector) Correct(query string) string {
	normalized := domain.Normalize(query)

	for _, term := range c.vocabulary {
		if domain.Normalize(term) == normalized {
			return query
		}
	}

	best := ""
	bestScore := 0
	for _, term := range c.vocabulary {
		score := fuzzy.TokenSetRatio(normalized, term)
		if score > bestScore {
			bestScore = score
			best = term
		}
	}

	if bestScore > c.threshold {
		if c.debug {
			log.Printf("[CORRECT] %q -> %q (score %d)", query, best, bestScore)
		}
		return best
	}

	return query
}
