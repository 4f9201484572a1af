package qdrant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	qdrantclient "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"marinebot/internal/domain"
)

// Storage is a Qdrant-backed vector store over the official gRPC client.
// It assumes cosine distance and creates the collection if missing.
type Storage struct {
	collections qdrantclient.CollectionsClient
	points      qdrantclient.PointsClient
	collection  string
	timeout     time.Duration
}

type Config struct {
	Host       string
	Port       int
	Collection string
	Timeout    time.Duration
}

func NewStorage(cfg Config) (*Storage, error) {
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 6334
	}
	if cfg.Collection == "" {
		return nil, errors.New("qdrant collection name required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to qdrant at %s: %w", addr, err)
	}
	return &Storage{
		collections: qdrantclient.NewCollectionsClient(conn),
		points:      qdrantclient.NewPointsClient(conn),
		collection:  cfg.Collection,
		timeout:     timeout,
	}, nil
}

func (s *Storage) Init(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	list, err := s.collections.List(ctx, &qdrantclient.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	for _, col := range list.GetCollections() {
		if col.GetName() == s.collection {
			return nil
		}
	}
	_, err = s.collections.Create(ctx, &qdrantclient.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &qdrantclient.VectorsConfig{
			Config: &qdrantclient.VectorsConfig_Params{
				Params: &qdrantclient.VectorParams{
					Size:     uint64(dimension),
					Distance: qdrantclient.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", s.collection, err)
	}
	return nil
}

func (s *Storage) Upsert(ctx context.Context, chunks []domain.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	points := make([]*qdrantclient.PointStruct, len(chunks))
	for i := range chunks {
		points[i] = &qdrantclient.PointStruct{
			Id: &qdrantclient.PointId{
				PointIdOptions: &qdrantclient.PointId_Uuid{Uuid: uuid.NewSHA1(uuid.NameSpaceOID, []byte(chunks[i].ID)).String()},
			},
			Vectors: &qdrantclient.Vectors{
				VectorsOptions: &qdrantclient.Vectors_Vector{
					Vector: &qdrantclient.Vector{Data: toFloat32(vectors[i])},
				},
			},
			Payload: map[string]*qdrantclient.Value{
				"chunk_id": {Kind: &qdrantclient.Value_StringValue{StringValue: chunks[i].ID}},
				"index":    {Kind: &qdrantclient.Value_IntegerValue{IntegerValue: int64(chunks[i].Index)}},
				"text":     {Kind: &qdrantclient.Value_StringValue{StringValue: chunks[i].Text}},
			},
		}
	}
	wait := true
	_, err := s.points.Upsert(ctx, &qdrantclient.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
		Wait:           &wait,
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func (s *Storage) Search(ctx context.Context, vector []float64, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = 3
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	resp, err := s.points.Search(ctx, &qdrantclient.SearchPoints{
		CollectionName: s.collection,
		Vector:         toFloat32(vector),
		Limit:          uint64(topK),
		WithPayload: &qdrantclient.WithPayloadSelector{
			SelectorOptions: &qdrantclient.WithPayloadSelector_Include{
				Include: &qdrantclient.PayloadIncludeSelector{
					Fields: []string{"chunk_id", "index", "text"},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant search failed: %w", err)
	}
	results := make([]domain.SearchResult, 0, len(resp.GetResult()))
	for _, point := range resp.GetResult() {
		chunk := domain.Chunk{}
		if v, ok := point.Payload["chunk_id"]; ok {
			chunk.ID = v.GetStringValue()
		}
		if v, ok := point.Payload["index"]; ok {
			chunk.Index = int(v.GetIntegerValue())
		}
		if v, ok := point.Payload["text"]; ok {
			chunk.Text = v.GetStringValue()
		}
		results = append(results, domain.SearchResult{Chunk: chunk, Score: float64(point.GetScore())})
	}
	return results, nil
}

func (s *Storage) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	_, err := s.collections.Delete(ctx, &qdrantclient.DeleteCollection{CollectionName: s.collection})
	if err != nil {
		return fmt.Errorf("failed to drop collection %s: %w", s.collection, err)
	}
	return nil
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}
