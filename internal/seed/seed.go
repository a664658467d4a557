package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"londonhealth/internal/model"
)

const (
	markerCollection = "SeedMarkers"
	markerName       = "stroke_seed_done"
)

// Patients loads the stroke dataset CSV into the patient collection once.
// The import is guarded by a marker document and is failure-tolerant: any
// problem is logged and skipped so the caller never aborts on seeding.
func Patients(ctx context.Context, db *mongo.Database, collectionName, csvPath string, logger zerolog.Logger) {
	patients := db.Collection(collectionName)
	markers := db.Collection(markerCollection)

	var marker bson.M
	err := markers.FindOne(ctx, bson.M{"name": markerName}).Decode(&marker)
	if err == nil {
		logger.Info().Msg("seed skipped (already done)")
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		logger.Warn().Err(err).Msg("marker check failed, skipping seeding")
		return
	}

	records, err := loadCSV(csvPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", csvPath).Msg("csv missing or unreadable, skipping seeding")
		return
	}

	if _, err := patients.DeleteMany(ctx, bson.M{}); err != nil {
		logger.Warn().Err(err).Msg("collection reset failed, skipping seeding")
		return
	}
	if len(records) > 0 {
		docs := make([]interface{}, 0, len(records))
		for i := range records {
			docs = append(docs, records[i])
		}
		if _, err := patients.InsertMany(ctx, docs); err != nil {
			logger.Warn().Err(err).Msg("insert failed, skipping seeding")
			return
		}
	}

	if _, err := markers.InsertOne(ctx, bson.M{"name": markerName}); err != nil {
		logger.Warn().Err(err).Msg("marker insert failed")
		return
	}
	logger.Info().Int("inserted", len(records)).Msg("seed complete")
}

// loadCSV parses the stroke dataset. Rows with an unknown gender are
// skipped; unparseable bmi values are coerced to 0, matching the reference
// import.
func loadCSV(path string) ([]model.Patient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}

	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	var records []model.Patient
	for _, row := range rows[1:] {
		gender := field(row, "gender")
		if gender != model.GenderMale && gender != model.GenderFemale {
			// The raw dataset contains "Other" rows; the service only
			// accepts the Male/Female enum, so they are dropped here
			// rather than imported as unwritable records.
			continue
		}
		id, err := strconv.Atoi(field(row, "id"))
		if err != nil {
			continue
		}
		age, _ := strconv.ParseFloat(field(row, "age"), 64)
		glucose, _ := strconv.ParseFloat(field(row, "avg_glucose_level"), 64)
		bmi, err := strconv.ParseFloat(field(row, "bmi"), 64)
		if err != nil {
			bmi = 0
		}
		records = append(records, model.Patient{
			PatientID:       id,
			Gender:          gender,
			Age:             int(age),
			Hypertension:    field(row, "hypertension") == "1",
			HeartDisease:    field(row, "heart_disease") == "1",
			EverMarried:     field(row, "ever_married"),
			WorkType:        field(row, "work_type"),
			ResidenceType:   field(row, "Residence_type"),
			AvgGlucoseLevel: glucose,
			BMI:             bmi,
			SmokingStatus:   field(row, "smoking_status"),
			Stroke:          field(row, "stroke") == "1",
		})
	}
	return records, nil
}
