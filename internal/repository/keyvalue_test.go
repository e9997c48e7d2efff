package repository

import (
	"context"
	"testing"

	"github.com/skillbloom/skillbloom/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	objects      map[string][]byte
	contentTypes map[string]string
}

func (f *fakeObjects) Put(_ context.Context, key string, body []byte, contentType string) error {
	f.objects[key] = body
	f.contentTypes[key] = contentType
	return nil
}

func (f *fakeObjects) Get(_ context.Context, key string) ([]byte, error) {
	body, ok := f.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return body, nil
}

func TestObjectStore(t *testing.T) {
	ctx := context.Background()
	objects := &fakeObjects{objects: map[string][]byte{}, contentTypes: map[string]string{}}
	store := NewObjectStore(objects)

	_, err := store.Get(ctx, "learner", KeySkills)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Put(ctx, "learner", KeySkills, []byte("[]")))

	key := "learners/learner/skillbloom_skills.json"
	assert.Equal(t, "[]", string(objects.objects[key]))
	assert.Equal(t, "application/json", objects.contentTypes[key])

	value, err := store.Get(ctx, "learner", KeySkills)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(value))
}

func TestRedisKeys(t *testing.T) {
	assert.Equal(t, "skillbloom:learner:skillbloom_preferences", redisKey("learner", KeyPreferences))
	assert.Equal(t, "cache.internal:6380", RedisConfig{Host: "cache.internal", Port: 6380}.Addr())
}
