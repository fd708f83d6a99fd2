package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	usersCollection        = "users"
	salonsCollection       = "salons"
	appointmentsCollection = "appointments"
	auditCollection        = "audit_logs"
)

// NewMongoStore wires the Mongo repositories on db and makes sure the
// indexes they rely on exist.
func NewMongoStore(ctx context.Context, client *mongo.Client, db *mongo.Database) (*Store, error) {
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}

	return &Store{
		Users:        NewUserMongoRepository(db),
		Salons:       NewSalonMongoRepository(db),
		Appointments: NewAppointmentMongoRepository(db),
		Audit:        NewAuditMongoRepository(db),
		Close:        client.Disconnect,
	}, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "googleId", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		},
		salonsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		appointmentsCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "date", Value: 1}, {Key: "startTime", Value: 1}}},
			{Keys: bson.D{{Key: "salon", Value: 1}, {Key: "date", Value: 1}, {Key: "startTime", Value: 1}}},
		},
	}

	for coll, idx := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}

func translateMongo(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateKey
	}
	return err
}

type AuditMongoRepository struct {
	coll *mongo.Collection
}

func NewAuditMongoRepository(db *mongo.Database) *AuditMongoRepository {
	return &AuditMongoRepository{coll: db.Collection(auditCollection)}
}

func (r *AuditMongoRepository) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	_, err := r.coll.InsertOne(ctx, entry)
	return err
}
