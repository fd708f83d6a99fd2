package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	domainAppointment "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentMongoRepository struct {
	coll *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Database) *AppointmentMongoRepository {
	return &AppointmentMongoRepository{coll: db.Collection(appointmentsCollection)}
}

func (r *AppointmentMongoRepository) Create(ctx context.Context, ap *models.Appointment) error {
	now := time.Now().UTC()
	ap.CreatedAt, ap.UpdatedAt = now, now
	if ap.Version == 0 {
		ap.Version = 1
	}

	_, err := r.coll.InsertOne(ctx, ap)
	return translateMongo(err)
}

func (r *AppointmentMongoRepository) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ap); err != nil {
		return nil, translateMongo(err)
	}
	return &ap, nil
}

func (r *AppointmentMongoRepository) list(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "startTime", Value: 1},
	})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, translateMongo(err)
	}

	apps := []models.Appointment{}
	if err := cur.All(ctx, &apps); err != nil {
		return nil, translateMongo(err)
	}
	return apps, nil
}

func (r *AppointmentMongoRepository) ListByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	return r.list(ctx, bson.M{"user": userID})
}

func (r *AppointmentMongoRepository) ListBySalon(ctx context.Context, salonID string) ([]models.Appointment, error) {
	return r.list(ctx, bson.M{"salon": salonID})
}

func (r *AppointmentMongoRepository) CountOverlapping(
	ctx context.Context,
	salonID string,
	date time.Time,
	start string,
	end string,
) (int64, error) {

	count, err := r.coll.CountDocuments(ctx, bson.M{
		"salon":     salonID,
		"date":      date,
		"status":    bson.M{"$in": domainAppointment.ActiveStatuses()},
		"startTime": bson.M{"$lt": end},
		"endTime":   bson.M{"$gt": start},
	})
	return count, translateMongo(err)
}

func (r *AppointmentMongoRepository) UpdateStatus(ctx context.Context, ap *models.Appointment) error {
	now := time.Now().UTC()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": ap.ID, "version": ap.Version},
		bson.M{
			"$set": bson.M{
				"status":      ap.Status,
				"cancelledAt": ap.CancelledAt,
				"completedAt": ap.CompletedAt,
				"updatedAt":   now,
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return translateMongo(err)
	}

	if res.MatchedCount == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": ap.ID})
		if err != nil {
			return translateMongo(err)
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrStaleVersion
	}

	ap.Version++
	ap.UpdatedAt = now
	return nil
}

// Compile-time check
var _ domainAppointment.Repository = (*AppointmentMongoRepository)(nil)
