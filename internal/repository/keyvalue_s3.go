package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillbloom/skillbloom/internal/storage"
)

type objectStore struct {
	objects storage.ObjectStore
}

// NewObjectStore keeps each entry as a JSON object at learners/{learner}/{key}.json.
func NewObjectStore(objects storage.ObjectStore) KeyValueStore {
	return &objectStore{objects: objects}
}

func objectKey(learnerID, key string) string {
	return fmt.Sprintf("learners/%s/%s.json", learnerID, key)
}

func (r *objectStore) Get(ctx context.Context, learnerID, key string) ([]byte, error) {
	value, err := r.objects.Get(ctx, objectKey(learnerID, key))
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, ErrKeyNotFound
	}
	return value, err
}

func (r *objectStore) Put(ctx context.Context, learnerID, key string, value []byte) error {
	return r.objects.Put(ctx, objectKey(learnerID, key), value, "application/json")
}
