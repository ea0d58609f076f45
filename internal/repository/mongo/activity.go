package mongo

import (
	"context"
	"fmt"

	"github.com/Rrens/boardsync/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const activityCollection = "activity_log"

// activityDoc is the stored form of an activity entry.
type activityDoc struct {
	ID         string         `bson:"_id"`
	EntityType string         `bson:"entity_type"`
	EntityID   string         `bson:"entity_id"`
	UserID     string         `bson:"user_id"`
	Action     string         `bson:"action"`
	Details    map[string]any `bson:"details,omitempty"`
	CreatedAt  string         `bson:"created_at"`
}

// ActivityRepository stores the activity trail in a MongoDB collection
type ActivityRepository struct {
	c *mongo.Collection
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{c: db.Collection(activityCollection)}
}

// EnsureIndexes creates the per-entity lookup index
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "entity_type", Value: 1},
			{Key: "entity_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("idx_activity_entity"),
	})
	if err != nil {
		return fmt.Errorf("failed to create activity index: %w", err)
	}
	return nil
}

// Create appends an entry
func (r *ActivityRepository) Create(ctx context.Context, entry *domain.ActivityLogEntry) error {
	doc := activityDoc{
		ID:         entry.ID,
		EntityType: string(entry.EntityType),
		EntityID:   entry.EntityID,
		UserID:     entry.UserID,
		Action:     entry.Action,
		Details:    entry.Details,
		CreatedAt:  entry.CreatedAt,
	}

	if _, err := r.c.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create activity entry: %w", err)
	}
	return nil
}

// ListByEntity retrieves the newest entries for one entity
func (r *ActivityRepository) ListByEntity(ctx context.Context, entityType domain.EntityType, entityID string, limit int) ([]domain.ActivityLogEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.c.Find(ctx, bson.M{"entity_type": string(entityType), "entity_id": entityID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer cur.Close(ctx)

	var docs []activityDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode activity: %w", err)
	}

	entries := make([]domain.ActivityLogEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, domain.ActivityLogEntry{
			ID:         doc.ID,
			EntityType: domain.EntityType(doc.EntityType),
			EntityID:   doc.EntityID,
			UserID:     doc.UserID,
			Action:     doc.Action,
			Details:    doc.Details,
			CreatedAt:  doc.CreatedAt,
		})
	}
	return entries, nil
}
