package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/forgeline/storefront-api/internal/core/domain"
)

const (
	productCollection = "products"
	serviceCollection = "service_offerings"
	staffCollection   = "staff"
)

type MongoCatalogRepository struct {
	products *mongo.Collection
	services *mongo.Collection
	staff    *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *MongoCatalogRepository {
	return &MongoCatalogRepository{
		products: db.Collection(productCollection),
		services: db.Collection(serviceCollection),
		staff:    db.Collection(staffCollection),
	}
}

type mongoProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Category    string             `bson:"category,omitempty"`
	Price       float64            `bson:"price"`
	Unit        string             `bson:"unit,omitempty"`
	ImageURL    string             `bson:"image_url,omitempty"`
	IsPublished bool               `bson:"is_published"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

type mongoService struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	IsPublished bool               `bson:"is_published"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

type mongoStaff struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Title     string             `bson:"title,omitempty"`
	PhotoURL  string             `bson:"photo_url,omitempty"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (r *MongoCatalogRepository) ListProducts(ctx context.Context, publishedOnly bool) ([]*domain.Product, error) {
	filter := bson.M{}
	if publishedOnly {
		filter["is_published"] = true
	}

	cursor, err := r.products.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Product
	for cursor.Next(ctx) {
		var mp mongoProduct
		if err := cursor.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		out = append(out, mp.toDomain())
	}
	return out, cursor.Err()
}

func (r *MongoCatalogRepository) FindProduct(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}
	var mp mongoProduct
	if err := r.products.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *MongoCatalogRepository) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	doc := mongoProduct{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Unit:        p.Unit,
		ImageURL:    p.ImageURL,
		IsPublished: p.IsPublished,
		CreatedAt:   p.CreatedAt.Unix(),
		UpdatedAt:   p.UpdatedAt.Unix(),
	}
	res, err := r.products.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	created := *p
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoCatalogRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrProductNotFound
	}
	update := bson.M{"$set": bson.M{
		"name":         p.Name,
		"description":  p.Description,
		"category":     p.Category,
		"price":        p.Price,
		"unit":         p.Unit,
		"image_url":    p.ImageURL,
		"is_published": p.IsPublished,
		"updated_at":   p.UpdatedAt.Unix(),
	}}
	res, err := r.products.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *MongoCatalogRepository) DeleteProduct(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}
	res, err := r.products.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *MongoCatalogRepository) ListServices(ctx context.Context, publishedOnly bool) ([]*domain.ServiceOffering, error) {
	filter := bson.M{}
	if publishedOnly {
		filter["is_published"] = true
	}

	cursor, err := r.services.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.ServiceOffering
	for cursor.Next(ctx) {
		var ms mongoService
		if err := cursor.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode service: %w", err)
		}
		out = append(out, &domain.ServiceOffering{
			ID:          ms.ID.Hex(),
			Name:        ms.Name,
			Description: ms.Description,
			IsPublished: ms.IsPublished,
			CreatedAt:   unixToTime(ms.CreatedAt),
			UpdatedAt:   unixToTime(ms.UpdatedAt),
		})
	}
	return out, cursor.Err()
}

func (r *MongoCatalogRepository) CreateService(ctx context.Context, s *domain.ServiceOffering) (*domain.ServiceOffering, error) {
	doc := mongoService{
		Name:        s.Name,
		Description: s.Description,
		IsPublished: s.IsPublished,
		CreatedAt:   s.CreatedAt.Unix(),
		UpdatedAt:   s.UpdatedAt.Unix(),
	}
	res, err := r.services.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert service: %w", err)
	}
	created := *s
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoCatalogRepository) UpdateService(ctx context.Context, s *domain.ServiceOffering) error {
	oid, err := primitive.ObjectIDFromHex(s.ID)
	if err != nil {
		return domain.ErrServiceNotFound
	}
	update := bson.M{"$set": bson.M{
		"name":         s.Name,
		"description":  s.Description,
		"is_published": s.IsPublished,
		"updated_at":   s.UpdatedAt.Unix(),
	}}
	res, err := r.services.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

func (r *MongoCatalogRepository) DeleteService(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrServiceNotFound
	}
	res, err := r.services.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

func (r *MongoCatalogRepository) ListStaff(ctx context.Context) ([]*domain.StaffMember, error) {
	cursor, err := r.staff.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.StaffMember
	for cursor.Next(ctx) {
		var ms mongoStaff
		if err := cursor.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode staff: %w", err)
		}
		out = append(out, &domain.StaffMember{
			ID:        ms.ID.Hex(),
			Name:      ms.Name,
			Title:     ms.Title,
			PhotoURL:  ms.PhotoURL,
			CreatedAt: unixToTime(ms.CreatedAt),
			UpdatedAt: unixToTime(ms.UpdatedAt),
		})
	}
	return out, cursor.Err()
}

func (r *MongoCatalogRepository) CreateStaff(ctx context.Context, m *domain.StaffMember) (*domain.StaffMember, error) {
	doc := mongoStaff{
		Name:      m.Name,
		Title:     m.Title,
		PhotoURL:  m.PhotoURL,
		CreatedAt: m.CreatedAt.Unix(),
		UpdatedAt: m.UpdatedAt.Unix(),
	}
	res, err := r.staff.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert staff: %w", err)
	}
	created := *m
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoCatalogRepository) DeleteStaff(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrStaffNotFound
	}
	res, err := r.staff.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrStaffNotFound
	}
	return nil
}

func (mp mongoProduct) toDomain() *domain.Product {
	return &domain.Product{
		ID:          mp.ID.Hex(),
		Name:        mp.Name,
		Description: mp.Description,
		Category:    mp.Category,
		Price:       mp.Price,
		Unit:        mp.Unit,
		ImageURL:    mp.ImageURL,
		IsPublished: mp.IsPublished,
		CreatedAt:   unixToTime(mp.CreatedAt),
		UpdatedAt:   unixToTime(mp.UpdatedAt),
	}
}
