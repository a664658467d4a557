package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"londonhealth/internal/model"
)

// PatientRepository defines clinical record store persistence operations.
// All lookups and mutations key on the business patient id except
// FindByRecordID, which resolves Mongo's own object id.
type PatientRepository interface {
	EnsureIndexes(ctx context.Context) error
	Insert(ctx context.Context, patient *model.Patient) (string, error)
	FindByPatientID(ctx context.Context, patientID int) (*model.Patient, error)
	FindByRecordID(ctx context.Context, recordID string) (*model.Patient, error)
	List(ctx context.Context, skip, limit int64) ([]model.Patient, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, patientID int, patient *model.Patient) (bool, error)
	Delete(ctx context.Context, patientID int) (bool, error)
}

type patientRepository struct {
	collection *mongo.Collection
}

// NewPatientRepository builds a Mongo-backed repository over the given
// collection.
func NewPatientRepository(collection *mongo.Collection) PatientRepository {
	return &patientRepository{collection: collection}
}

// EnsureIndexes creates the unique index backing the patient id invariant.
// The index is the source of truth; service pre-checks only improve errors.
func (r *patientRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *patientRepository) Insert(ctx context.Context, patient *model.Patient) (string, error) {
	res, err := r.collection.InsertOne(ctx, patient)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return oid.Hex(), nil
}

func (r *patientRepository) FindByPatientID(ctx context.Context, patientID int) (*model.Patient, error) {
	var patient model.Patient
	err := r.collection.FindOne(ctx, bson.M{"id": patientID}).Decode(&patient)
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByRecordID(ctx context.Context, recordID string) (*model.Patient, error) {
	oid, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var patient model.Patient
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// List returns one page of records, newest insertion first.
func (r *patientRepository) List(ctx context.Context, skip, limit int64) ([]model.Patient, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var patients []model.Patient
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *patientRepository) Update(ctx context.Context, patientID int, patient *model.Patient) (bool, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"id": patientID}, bson.M{"$set": bson.M{
		"gender":            patient.Gender,
		"age":               patient.Age,
		"hypertension":      patient.Hypertension,
		"heart_disease":     patient.HeartDisease,
		"ever_married":      patient.EverMarried,
		"work_type":         patient.WorkType,
		"Residence_type":    patient.ResidenceType,
		"avg_glucose_level": patient.AvgGlucoseLevel,
		"bmi":               patient.BMI,
		"smoking_status":    patient.SmokingStatus,
		"stroke":            patient.Stroke,
	}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *patientRepository) Delete(ctx context.Context, patientID int) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": patientID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
