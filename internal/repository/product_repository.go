package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/online-catalog/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, in models.ProductInput) (*models.Product, error)
	Update(ctx context.Context, id string, in models.ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// productDoc is the BSON shape of a product document.
type productDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Brand       string             `bson:"brand"`
	Model       string             `bson:"model"`
	Category    string             `bson:"category"`
	Price       string             `bson:"price"`
	Image       string             `bson:"image"`
	Description string             `bson:"description"`
	OptionIDs   []string           `bson:"optionIds"`
}

func (d productDoc) toModel() models.Product {
	return models.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Brand:       d.Brand,
		Model:       d.Model,
		Category:    d.Category,
		Price:       d.Price,
		Image:       d.Image,
		Description: d.Description,
		OptionIDs:   d.OptionIDs,
	}
}

func productUpdateFields(in models.ProductInput) bson.M {
	return bson.M{
		"name":        in.Name,
		"brand":       in.Brand,
		"model":       in.Model,
		"category":    in.Category,
		"price":       in.Price,
		"image":       in.Image,
		"description": in.Description,
		"optionIds":   in.OptionIDs,
	}
}

// MongoProductRepository implements ProductRepository on the products
// collection.
type MongoProductRepository struct {
	col *mongo.Collection
}

// NewMongoProductRepository creates a product repository backed by the given
// database.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{col: db.Collection(productsCollection)}
}

// GetAll returns every product sorted by name, matching the storefront's
// default listing order.
func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]models.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toModel())
	}
	return products, nil
}

// GetByID returns a product by its ID. Malformed ids read as not found.
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	var doc productDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}

	p := doc.toModel()
	return &p, nil
}

// Create inserts a new product and returns it with its assigned ID.
func (r *MongoProductRepository) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	res, err := r.col.InsertOne(ctx, productUpdateFields(in))
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert product: unexpected id type %T", res.InsertedID)
	}
	return r.GetByID(ctx, oid.Hex())
}

// Update overwrites a product's fields and returns the updated document.
func (r *MongoProductRepository) Update(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": productUpdateFields(in)})
	if err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrProductNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a product document.
func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrProductNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}
