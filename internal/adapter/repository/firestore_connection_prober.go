package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/Bayu5aputra/personal-profile/internal/domain/repository"
)

type firestoreConnectionProber struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreConnectionProber probes by writing a document to collection and deleting it.
func NewFirestoreConnectionProber(client *firestore.Client, collection string) repository.ConnectionProber {
	return &firestoreConnectionProber{
		client:     client,
		collection: collection,
	}
}

func (p *firestoreConnectionProber) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	ref, _, err := p.client.Collection(p.collection).Add(ctx, map[string]interface{}{
		"message":   "Firebase connection test",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	_, err = ref.Delete(ctx)
	return err
}

func (p *firestoreConnectionProber) ClearProbes(ctx context.Context) (int, error) {
	return deleteCollection(ctx, p.client, p.collection)
}
