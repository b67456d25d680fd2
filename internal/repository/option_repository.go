package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/online-catalog/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrOptionNotFound = errors.New("option not found")
)

// OptionRepository defines the interface for option-group data access.
type OptionRepository interface {
	GetAll(ctx context.Context) ([]models.Option, error)
	GetByID(ctx context.Context, id string) (*models.Option, error)
	Create(ctx context.Context, in models.OptionInput) (*models.Option, error)
	Update(ctx context.Context, id string, in models.OptionInput) (*models.Option, error)
	Delete(ctx context.Context, id string) error
}

type optionDoc struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Name   string             `bson:"name"`
	Values []string           `bson:"values"`
}

func (d optionDoc) toModel() models.Option {
	return models.Option{ID: d.ID.Hex(), Name: d.Name, Values: d.Values}
}

// MongoOptionRepository implements OptionRepository on the options
// collection.
type MongoOptionRepository struct {
	col *mongo.Collection
}

// NewMongoOptionRepository creates an option repository backed by the given
// database.
func NewMongoOptionRepository(db *mongo.Database) *MongoOptionRepository {
	return &MongoOptionRepository{col: db.Collection(optionsCollection)}
}

// GetAll returns every option group.
func (r *MongoOptionRepository) GetAll(ctx context.Context) ([]models.Option, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find options: %w", err)
	}
	defer cur.Close(ctx)

	var docs []optionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}

	opts := make([]models.Option, 0, len(docs))
	for _, d := range docs {
		opts = append(opts, d.toModel())
	}
	return opts, nil
}

// GetByID returns an option group by its ID. Malformed ids read as not found.
func (r *MongoOptionRepository) GetByID(ctx context.Context, id string) (*models.Option, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOptionNotFound
	}

	var doc optionDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOptionNotFound
		}
		return nil, fmt.Errorf("find option %s: %w", id, err)
	}

	o := doc.toModel()
	return &o, nil
}

// Create inserts a new option group and returns it with its assigned ID.
func (r *MongoOptionRepository) Create(ctx context.Context, in models.OptionInput) (*models.Option, error) {
	res, err := r.col.InsertOne(ctx, bson.M{"name": in.Name, "values": in.Values})
	if err != nil {
		return nil, fmt.Errorf("insert option: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert option: unexpected id type %T", res.InsertedID)
	}
	return r.GetByID(ctx, oid.Hex())
}

// Update overwrites an option group's fields and returns the updated group.
func (r *MongoOptionRepository) Update(ctx context.Context, id string, in models.OptionInput) (*models.Option, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOptionNotFound
	}

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"name": in.Name, "values": in.Values}})
	if err != nil {
		return nil, fmt.Errorf("update option %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrOptionNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes an option group. Products referencing it keep the dangling
// id; the product service skips unresolved references when joining.
func (r *MongoOptionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrOptionNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete option %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrOptionNotFound
	}
	return nil
}
