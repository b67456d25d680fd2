package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/online-catalog/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	Create(ctx context.Context, order models.Order) (*models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type orderDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Customer   models.Customer    `bson:"customer"`
	Items      []models.OrderItem `bson:"items"`
	TotalItems int                `bson:"totalItems"`
	TotalPrice string             `bson:"totalPrice"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func (d orderDoc) toModel() models.Order {
	return models.Order{
		ID:         d.ID.Hex(),
		Customer:   d.Customer,
		Items:      d.Items,
		TotalItems: d.TotalItems,
		TotalPrice: d.TotalPrice,
		Status:     d.Status,
		CreatedAt:  d.CreatedAt,
	}
}

// MongoOrderRepository implements OrderRepository on the orders collection.
type MongoOrderRepository struct {
	col *mongo.Collection
}

// NewMongoOrderRepository creates an order repository backed by the given
// database.
func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{col: db.Collection(ordersCollection)}
}

// GetAll returns every order, newest first.
func (r *MongoOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cur.Close(ctx)

	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]models.Order, 0, len(docs))
	for _, d := range docs {
		orders = append(orders, d.toModel())
	}
	return orders, nil
}

// Create inserts a new order and returns it with its assigned ID.
func (r *MongoOrderRepository) Create(ctx context.Context, order models.Order) (*models.Order, error) {
	doc := orderDoc{
		Customer:   order.Customer,
		Items:      order.Items,
		TotalItems: order.TotalItems,
		TotalPrice: order.TotalPrice,
		Status:     order.Status,
		CreatedAt:  order.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert order: unexpected id type %T", res.InsertedID)
	}

	order.ID = oid.Hex()
	return &order, nil
}

// UpdateStatus sets an order's status.
func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrOrderNotFound
	}

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update order %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// Delete removes an order document.
func (r *MongoOrderRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrOrderNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}
