package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wenturc/prompt-market/internal/core/domain"
)

const promptCollection = "prompts"

// PromptRepository is the Mongo-backed catalog cache.
type PromptRepository struct {
	coll *mongo.Collection
}

func NewPromptRepository(db *mongo.Database) *PromptRepository {
	return &PromptRepository{coll: db.Collection(promptCollection)}
}

type mongoPrompt struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ExternalID string             `bson:"external_id"`
	Title      string             `bson:"title"`
	Content    string             `bson:"content"`
	Author     string             `bson:"author,omitempty"`
	Category   string             `bson:"category,omitempty"`
	Tags       []string           `bson:"tags,omitempty"`
	Likes      int                `bson:"likes"`
	Source     string             `bson:"source"`
	SyncedAt   int64              `bson:"synced_at"`
}

// UpsertMany writes a synced batch, keyed by (source, external_id) so
// re-syncs replace instead of duplicating. Returns the number of documents
// written.
func (r *PromptRepository) UpsertMany(ctx context.Context, prompts []domain.Prompt) (int, error) {
	if len(prompts) == 0 {
		return 0, nil
	}

	models := make([]mongo.WriteModel, 0, len(prompts))
	for _, p := range prompts {
		doc := mongoPrompt{
			ExternalID: p.ExternalID,
			Title:      p.Title,
			Content:    p.Content,
			Author:     p.Author,
			Category:   p.Category,
			Tags:       p.Tags,
			Likes:      p.Likes,
			Source:     p.Source,
			SyncedAt:   p.SyncedAt.Unix(),
		}
		filter := bson.M{"source": p.Source, "external_id": p.ExternalID}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(filter).
			SetReplacement(doc).
			SetUpsert(true))
	}

	res, err := r.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("upsert prompts: %w", err)
	}
	return int(res.UpsertedCount + res.ModifiedCount + res.MatchedCount), nil
}

// List returns a catalog page ordered by most recently synced.
func (r *PromptRepository) List(ctx context.Context, skip, limit int) ([]domain.Prompt, error) {
	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "synced_at", Value: -1}})

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Prompt
	for cur.Next(ctx) {
		var mp mongoPrompt
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode prompt: %w", err)
		}
		out = append(out, mp.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	return out, nil
}

func (r *PromptRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count prompts: %w", err)
	}
	return n, nil
}

func (mp mongoPrompt) toDomain() domain.Prompt {
	return domain.Prompt{
		ID:         mp.ID.Hex(),
		ExternalID: mp.ExternalID,
		Title:      mp.Title,
		Content:    mp.Content,
		Author:     mp.Author,
		Category:   mp.Category,
		Tags:       mp.Tags,
		Likes:      mp.Likes,
		Source:     mp.Source,
		SyncedAt:   time.Unix(mp.SyncedAt, 0).UTC(),
	}
}
