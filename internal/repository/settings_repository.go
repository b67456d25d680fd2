package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/online-catalog/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// settingsDocID is the fixed id of the single settings document.
const settingsDocID = "main"

// SettingsRepository defines the interface for the site settings document.
type SettingsRepository interface {
	// Get reads the settings. A missing document reads as empty settings,
	// not an error.
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, s models.Settings) error
}

type settingsDoc struct {
	ID       string `bson:"_id"`
	WhatsApp string `bson:"whatsapp"`
}

// MongoSettingsRepository implements SettingsRepository on the settings
// collection.
type MongoSettingsRepository struct {
	col *mongo.Collection
}

// NewMongoSettingsRepository creates a settings repository backed by the
// given database.
func NewMongoSettingsRepository(db *mongo.Database) *MongoSettingsRepository {
	return &MongoSettingsRepository{col: db.Collection(settingsCollection)}
}

// Get reads the settings document.
func (r *MongoSettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var doc settingsDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.Settings{}, nil
		}
		return nil, fmt.Errorf("find settings: %w", err)
	}
	return &models.Settings{WhatsApp: doc.WhatsApp}, nil
}

// Save writes the settings document, creating it on first save.
func (r *MongoSettingsRepository) Save(ctx context.Context, s models.Settings) error {
	doc := settingsDoc{ID: settingsDocID, WhatsApp: s.WhatsApp}
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": settingsDocID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
