package model

import (
	"context"
	"fmt"

	"github.com/veritaslab/veritas/internal/storage"
)

// Load fetches both artifacts from the store and builds the immutable
// model state. Called once at process startup, before any request is
// served; the returned Encoder and Classifier are shared read-only by
// all requests.
func Load(ctx context.Context, store storage.ArtifactStore, encoderKey, classifierKey string) (*Encoder, *Classifier, error) {
	encReader, err := store.Fetch(ctx, encoderKey)
	if err != nil {
		return nil, nil, err
	}
	defer encReader.Close()
	encArtifact, err := ReadEncoderArtifact(encReader)
	if err != nil {
		return nil, nil, err
	}

	clsReader, err := store.Fetch(ctx, classifierKey)
	if err != nil {
		return nil, nil, err
	}
	defer clsReader.Close()
	clsArtifact, err := ReadClassifierArtifact(clsReader)
	if err != nil {
		return nil, nil, err
	}

	if encArtifact.Dimensions != clsArtifact.Dimensions {
		return nil, nil, fmt.Errorf("artifact mismatch: encoder is %d-dimensional, classifier expects %d",
			encArtifact.Dimensions, clsArtifact.Dimensions)
	}

	encoder, err := NewEncoder(encArtifact)
	if err != nil {
		return nil, nil, err
	}
	classifier, err := NewClassifier(clsArtifact)
	if err != nil {
		return nil, nil, err
	}
	return encoder, classifier, nil
}
