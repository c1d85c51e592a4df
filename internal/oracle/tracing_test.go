package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSimilaritySpanOmitsSecretWord(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"lighthouse": {1, 0},
		"lamp":       {1, 1},
	}}
	o, err := New(NewVocabulary("lighthouse", "lamp"), embedder, 16)
	require.NoError(t, err)

	_, err = o.Similarity(context.Background(), "lighthouse", "lamp")
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, map[string]string{"word.guess": "lamp"}, attrs)
	for _, value := range attrs {
		assert.NotContains(t, value, "lighthouse")
	}
}
