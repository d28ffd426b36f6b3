// Package storage provides generation history storage for chatmode using
// NATS KV. Serve mode records every artifact it produces so operators can
// audit what was generated, when and for whom.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/chatmode/artifact"
)

// BucketRecords is the KV bucket holding generation records.
const BucketRecords = "CHATMODE_RECORDS"

// GenerationRecord describes one completed artifact generation.
type GenerationRecord struct {
	ID           string                `json:"id"`
	AgentID      string                `json:"agent_id"`
	Prompt       string                `json:"prompt"`
	Targets      string                `json:"targets"`
	ArtifactType artifact.ArtifactType `json:"artifact_type"`
	DiagramType  artifact.DiagramType  `json:"diagram_type,omitempty"`
	RelativePath string                `json:"relative_path"`
	MimeKind     artifact.MimeKind     `json:"mime_kind"`
	UserName     string                `json:"user_name"`
	CreatedAt    time.Time             `json:"created_at"`
}

// NewRecordID generates a unique record identifier.
func NewRecordID() string {
	return uuid.New().String()
}

// Store provides generation record storage backed by NATS KV.
type Store struct {
	records jetstream.KeyValue
}

// NewStore creates a Store with the given JetStream context, creating the
// records bucket if it doesn't exist.
func NewStore(ctx context.Context, js jetstream.JetStream) (*Store, error) {
	records, err := getOrCreateBucket(ctx, js, BucketRecords)
	if err != nil {
		return nil, fmt.Errorf("create records bucket: %w", err)
	}

	return &Store{records: records}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: "Chatmode generation history",
		History:     5, // Keep last 5 revisions
	})
}

// CreateRecord stores a new generation record and returns its ID.
func (s *Store) CreateRecord(ctx context.Context, r *GenerationRecord) (string, error) {
	if r.ID == "" {
		r.ID = NewRecordID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}

	if _, err := s.records.Create(ctx, r.ID, data); err != nil {
		return "", fmt.Errorf("store record: %w", err)
	}

	return r.ID, nil
}

// GetRecord retrieves a generation record by ID.
func (s *Store) GetRecord(ctx context.Context, id string) (*GenerationRecord, error) {
	entry, err := s.records.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get record: %w", err)
	}

	var r GenerationRecord
	if err := json.Unmarshal(entry.Value(), &r); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}

	return &r, nil
}

// ListRecords returns all generation records, newest first.
func (s *Store) ListRecords(ctx context.Context) ([]*GenerationRecord, error) {
	keys, err := s.records.Keys(ctx)
	if err != nil {
		if err == jetstream.ErrNoKeysFound {
			return nil, nil
		}
		return nil, fmt.Errorf("list record keys: %w", err)
	}

	records := make([]*GenerationRecord, 0, len(keys))
	for _, key := range keys {
		entry, err := s.records.Get(ctx, key)
		if err != nil {
			continue // Skip entries that fail to load
		}
		var r GenerationRecord
		if err := json.Unmarshal(entry.Value(), &r); err != nil {
			continue
		}
		records = append(records, &r)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return records, nil
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "key not found")
}
