package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/forgeline/storefront-api/internal/core/domain"
)

const quoteCollection = "quotes"

type MongoQuoteRepository struct {
	coll *mongo.Collection
}

func NewQuoteRepository(db *mongo.Database) *MongoQuoteRepository {
	return &MongoQuoteRepository{coll: db.Collection(quoteCollection)}
}

type mongoQuote struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id,omitempty"`
	ContactName string             `bson:"contact_name"`
	Email       string             `bson:"email"`
	Phone       string             `bson:"phone,omitempty"`
	CompanyName string             `bson:"company_name,omitempty"`
	Items       []domain.OrderItem `bson:"items"`
	Message     string             `bson:"message,omitempty"`
	QuotedPrice float64            `bson:"quoted_price,omitempty"`
	Status      string             `bson:"status"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *MongoQuoteRepository) Create(ctx context.Context, q *domain.Quote) (*domain.Quote, error) {
	doc := mongoQuote{
		UserID:      q.UserID,
		ContactName: q.ContactName,
		Email:       q.Email,
		Phone:       q.Phone,
		CompanyName: q.CompanyName,
		Items:       q.Items,
		Message:     q.Message,
		Status:      string(q.Status),
		CreatedAt:   q.CreatedAt.Unix(),
		UpdatedAt:   q.UpdatedAt.Unix(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert quote: %w", err)
	}
	created := *q
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoQuoteRepository) FindByID(ctx context.Context, id string) (*domain.Quote, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrQuoteNotFound
	}
	var mq mongoQuote
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mq); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("find quote: %w", err)
	}
	return mq.toDomain(), nil
}

func (r *MongoQuoteRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Quote, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *MongoQuoteRepository) List(ctx context.Context) ([]*domain.Quote, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoQuoteRepository) list(ctx context.Context, filter bson.M) ([]*domain.Quote, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Quote
	for cursor.Next(ctx) {
		var mq mongoQuote
		if err := cursor.Decode(&mq); err != nil {
			return nil, fmt.Errorf("decode quote: %w", err)
		}
		out = append(out, mq.toDomain())
	}
	return out, cursor.Err()
}

func (r *MongoQuoteRepository) UpdateStatus(ctx context.Context, id string, status domain.QuoteStatus, quotedPrice float64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrQuoteNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":       string(status),
		"quoted_price": quotedPrice,
		"updated_at":   nowUnix(),
	}})
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

func (mq mongoQuote) toDomain() *domain.Quote {
	return &domain.Quote{
		ID:          mq.ID.Hex(),
		UserID:      mq.UserID,
		ContactName: mq.ContactName,
		Email:       mq.Email,
		Phone:       mq.Phone,
		CompanyName: mq.CompanyName,
		Items:       mq.Items,
		Message:     mq.Message,
		QuotedPrice: mq.QuotedPrice,
		Status:      domain.QuoteStatus(mq.Status),
		CreatedAt:   unixToTime(mq.CreatedAt),
		UpdatedAt:   unixToTime(mq.UpdatedAt),
	}
}

func nowUnix() int64 {
	return time.Now().UTC().Unix()
}
