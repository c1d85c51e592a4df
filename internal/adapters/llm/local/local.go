// Package local computes embeddings offline with a sentence-transformers
// model converted by cybertron.
package local

import (
	"context"
	"fmt"

	"github.com/nlpodyssey/cybertron/pkg/models/bert"
	"github.com/nlpodyssey/cybertron/pkg/tasks"
	"github.com/nlpodyssey/cybertron/pkg/tasks/textencoding"
	log "github.com/sirupsen/logrus"
)

const DefaultModel = "sentence-transformers/all-MiniLM-L6-v2"

type Encoder struct {
	model  textencoding.Interface
	logger *log.Entry
}

func NewEncoder(modelsDir, modelName string, logger *log.Entry) (*Encoder, error) {
	if modelName == "" {
		modelName = DefaultModel
	}
	m, err := tasks.Load[textencoding.Interface](&tasks.Config{
		ModelsDir:           modelsDir,
		ModelName:           modelName,
		DownloadPolicy:      tasks.DownloadMissing,
		ConversionPolicy:    tasks.ConvertMissing,
		ConversionPrecision: tasks.F32,
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", modelName, err)
	}
	logger.WithField("model", modelName).Info("local embedding model loaded")
	return &Encoder{model: m, logger: logger}, nil
}

func (e *Encoder) Embed(ctx context.Context, text string) ([]float32, error) {
	result, err := e.model.Encode(ctx, text, int(bert.MeanPooling))
	if err != nil {
		return nil, err
	}
	values := result.Vector.Data().F64()
	vector := make([]float32, len(values))
	for i, v := range values {
		vector[i] = float32(v)
	}
	return vector, nil
}
