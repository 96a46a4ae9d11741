package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fountainmap/fountain-finder/internal/core/domain"
)

const collectionFountains = "fountains"

type FountainRepository struct {
	col *mongo.Collection
}

func NewFountainRepository(db *mongo.Database) *FountainRepository {
	return &FountainRepository{col: db.Collection(collectionFountains)}
}

type mongoFountain struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Name              string             `bson:"name"`
	Address           string             `bson:"address"`
	Lat               float64            `bson:"lat"`
	Lng               float64            `bson:"lng"`
	Reviews           []domain.Review    `bson:"reviews"`
	CreatedBy         string             `bson:"created_by"`
	CreatedByUsername string             `bson:"created_by_username"`
	CreatedAt         time.Time          `bson:"created_at"`
	ReportCount       int                `bson:"report_count"`
}

// Create inserts a new fountain document.
func (r *FountainRepository) Create(ctx context.Context, f *domain.Fountain) (*domain.Fountain, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoFountain{
		Name:              f.Name,
		Address:           f.Address,
		Lat:               f.Lat,
		Lng:               f.Lng,
		Reviews:           f.Reviews,
		CreatedBy:         f.CreatedBy,
		CreatedByUsername: f.CreatedByUsername,
		CreatedAt:         f.CreatedAt,
		ReportCount:       f.ReportCount,
	}
	if doc.Reviews == nil {
		doc.Reviews = []domain.Review{}
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert fountain: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return toDomainFountain(doc), nil
}

// FindByID retrieves a fountain by id. A malformed id is a not-found, not an
// infrastructure error.
func (r *FountainRepository) FindByID(ctx context.Context, id string) (*domain.Fountain, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFountainNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mf mongoFountain
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mf); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFountainNotFound
		}
		return nil, fmt.Errorf("find fountain: %w", err)
	}
	return toDomainFountain(mf), nil
}

// FindAll returns fountains sorted newest first, optionally restricted to a
// bounding box translated into inclusive range conditions on lat and lng.
func (r *FountainRepository) FindAll(ctx context.Context, box *domain.BoundingBox) ([]*domain.Fountain, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if box != nil {
		filter["lat"] = bson.M{"$gte": box.MinLat, "$lte": box.MaxLat}
		filter["lng"] = bson.M{"$gte": box.MinLng, "$lte": box.MaxLng}
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list fountains: %w", err)
	}
	defer cur.Close(ctx)

	fountains := []*domain.Fountain{}
	for cur.Next(ctx) {
		var mf mongoFountain
		if err := cur.Decode(&mf); err != nil {
			return nil, fmt.Errorf("decode fountain: %w", err)
		}
		fountains = append(fountains, toDomainFountain(mf))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list fountains: %w", err)
	}
	return fountains, nil
}

// ExistsWithin reports whether any fountain lies inside the box.
func (r *FountainRepository) ExistsWithin(ctx context.Context, box domain.BoundingBox) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{
		"lat": bson.M{"$gte": box.MinLat, "$lte": box.MaxLat},
		"lng": bson.M{"$gte": box.MinLng, "$lte": box.MaxLng},
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count fountains: %w", err)
	}
	return n > 0, nil
}

// AppendReview pushes the review onto the fountain's review list as a single
// document mutation and returns the updated document.
func (r *FountainRepository) AppendReview(ctx context.Context, id string, review domain.Review) (*domain.Fountain, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFountainNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mf mongoFountain
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"reviews": review}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mf)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFountainNotFound
		}
		return nil, fmt.Errorf("append review: %w", err)
	}
	return toDomainFountain(mf), nil
}

// IncrementReportCount bumps the report counter as a single document mutation.
func (r *FountainRepository) IncrementReportCount(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrFountainNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"report_count": 1}})
	if err != nil {
		return fmt.Errorf("increment report count: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrFountainNotFound
	}
	return nil
}

// Delete removes a fountain document.
func (r *FountainRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrFountainNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete fountain: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFountainNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the fountains collection.
func (r *FountainRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "lat", Value: 1}, {Key: "lng", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toDomainFountain(mf mongoFountain) *domain.Fountain {
	reviews := mf.Reviews
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return &domain.Fountain{
		ID:                mf.ID.Hex(),
		Name:              mf.Name,
		Address:           mf.Address,
		Lat:               mf.Lat,
		Lng:               mf.Lng,
		Reviews:           reviews,
		CreatedBy:         mf.CreatedBy,
		CreatedByUsername: mf.CreatedByUsername,
		CreatedAt:         mf.CreatedAt.UTC(),
		ReportCount:       mf.ReportCount,
	}
}
