package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type SalonMongoRepository struct {
	coll *mongo.Collection
}

func NewSalonMongoRepository(db *mongo.Database) *SalonMongoRepository {
	return &SalonMongoRepository{coll: db.Collection(salonsCollection)}
}

func keywordFilter(keyword string) bson.M {
	if keyword == "" {
		return bson.M{}
	}
	return bson.M{"name": bson.M{"$regex": regexp.QuoteMeta(keyword), "$options": "i"}}
}

func (r *SalonMongoRepository) List(ctx context.Context, q salon.Query) ([]models.Salon, int64, error) {
	filter := keywordFilter(q.Keyword)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, translateMongo(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetSkip(int64(q.Offset)).
		SetLimit(int64(q.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, translateMongo(err)
	}

	salons := []models.Salon{}
	if err := cur.All(ctx, &salons); err != nil {
		return nil, 0, translateMongo(err)
	}
	return salons, total, nil
}

func (r *SalonMongoRepository) GetByID(ctx context.Context, id string) (*models.Salon, error) {
	var s models.Salon
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, translateMongo(err)
	}
	return &s, nil
}

func (r *SalonMongoRepository) GetByIDs(ctx context.Context, ids []string) (map[string]models.Salon, error) {
	out := make(map[string]models.Salon, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, translateMongo(err)
	}

	var salons []models.Salon
	if err := cur.All(ctx, &salons); err != nil {
		return nil, translateMongo(err)
	}
	for _, s := range salons {
		out[s.ID] = s
	}
	return out, nil
}

func (r *SalonMongoRepository) Create(ctx context.Context, s *models.Salon) error {
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now

	_, err := r.coll.InsertOne(ctx, s)
	return translateMongo(err)
}

func (r *SalonMongoRepository) Update(ctx context.Context, s *models.Salon) error {
	s.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return translateMongo(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SalonMongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateMongo(err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Compile-time check
var _ salon.Repository = (*SalonMongoRepository)(nil)
