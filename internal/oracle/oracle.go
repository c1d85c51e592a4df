// Package oracle adjudicates guesses: it knows which words exist and how
// close two words are in embedding space.
package oracle

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"github.com/iamwavecut/guessbot/internal/adapters"
	"github.com/iamwavecut/guessbot/internal/observability"
)

const DefaultCacheSize = 4096

type Oracle struct {
	vocabulary *Vocabulary
	embedder   adapters.Embedder
	cache      *lru.Cache[string, []float32]
	inflight   singleflight.Group
}

func New(vocabulary *Vocabulary, embedder adapters.Embedder, cacheSize int) (*Oracle, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, []float32](cacheSize)
	if err != nil {
		return nil, errors.WithMessage(err, "create embedding cache")
	}
	return &Oracle{
		vocabulary: vocabulary,
		embedder:   embedder,
		cache:      cache,
	}, nil
}

func (o *Oracle) IsKnown(word string) bool {
	return o.vocabulary.Contains(word)
}

// Embed returns the cached embedding of word, asking the embedder once per
// word even under concurrent callers.
func (o *Oracle) Embed(ctx context.Context, word string) ([]float32, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if vector, ok := o.cache.Get(word); ok {
		return vector, nil
	}
	v, err, _ := o.inflight.Do(word, func() (any, error) {
		if vector, ok := o.cache.Get(word); ok {
			return vector, nil
		}
		vector, err := o.embedder.Embed(ctx, word)
		if err != nil {
			return nil, err
		}
		o.cache.Add(word, vector)
		return vector, nil
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "embed %q", word)
	}
	return v.([]float32), nil
}

// Similarity returns the cosine similarity of the embeddings of a and b.
// a is the secret word and never leaves the process.
func (o *Oracle) Similarity(ctx context.Context, a, b string) (float64, error) {
	ctx, span := observability.Tracer().Start(ctx, "oracle.Similarity")
	defer span.End()
	span.SetAttributes(attribute.String("word.guess", b))

	va, err := o.Embed(ctx, a)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	vb, err := o.Embed(ctx, b)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	return Cosine(va, vb), nil
}
