package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/schemaworks/theoria/graph"
)

// BucketSchemas is the KV bucket holding assembled schema payloads.
const BucketSchemas = "theoria_schemas"

// Store provides schema payload storage backed by NATS KV. Payloads are
// keyed by input hash, so the store doubles as an assembly cache: equal
// inputs hash to the same key and carry the same content.
type Store struct {
	js jetstream.JetStream

	mu      sync.Mutex
	schemas jetstream.KeyValue
}

// NewStore creates a Store on the given JetStream context. The bucket is
// created lazily on first use.
func NewStore(js jetstream.JetStream) *Store {
	return &Store{js: js}
}

func (s *Store) bucket(ctx context.Context) (jetstream.KeyValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schemas != nil {
		return s.schemas, nil
	}

	kv, err := getOrCreateBucket(ctx, s.js, BucketSchemas)
	if err != nil {
		return nil, fmt.Errorf("create schemas bucket: %w", err)
	}
	s.schemas = kv
	return kv, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: "Theoria assembled schema storage",
		History:     5, // Keep last 5 revisions
	})
}

// SaveResult stores a schema payload under its input hash and returns the
// entity ID of the stored entry. Overwriting a replay is harmless because
// equal hashes carry equal content.
func (s *Store) SaveResult(ctx context.Context, hash string, payload *graph.SchemaPayload) (EntityID, error) {
	if hash == "" {
		return EntityID{}, fmt.Errorf("empty input hash")
	}

	kv, err := s.bucket(ctx)
	if err != nil {
		return EntityID{}, err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return EntityID{}, fmt.Errorf("marshal schema payload: %w", err)
	}

	if _, err := kv.Put(ctx, hash, data); err != nil {
		return EntityID{}, fmt.Errorf("store schema payload: %w", err)
	}

	return EntityID{Type: EntityTypeSchema, ID: hash}, nil
}

// GetResult retrieves the schema payload stored under the given input hash.
func (s *Store) GetResult(ctx context.Context, hash string) (*graph.SchemaPayload, error) {
	kv, err := s.bucket(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := kv.Get(ctx, hash)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get schema payload: %w", err)
	}

	var payload graph.SchemaPayload
	if err := json.Unmarshal(entry.Value(), &payload); err != nil {
		return nil, fmt.Errorf("unmarshal schema payload: %w", err)
	}

	return &payload, nil
}

// DeleteResult removes the payload stored under the given input hash.
// Deleting a hash that was never stored is not an error.
func (s *Store) DeleteResult(ctx context.Context, hash string) error {
	kv, err := s.bucket(ctx)
	if err != nil {
		return err
	}

	if err := kv.Delete(ctx, hash); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("delete schema payload: %w", err)
	}

	return nil
}

// ListHashes returns the input hashes of all stored payloads in sorted order.
func (s *Store) ListHashes(ctx context.Context) ([]string, error) {
	kv, err := s.bucket(ctx)
	if err != nil {
		return nil, err
	}

	keys, err := kv.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list schema keys: %w", err)
	}

	sort.Strings(keys)
	return keys, nil
}
