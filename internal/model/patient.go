package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Patient genders accepted by the clinical record store.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// Patient represents a clinical record in the document store. PatientID is
// the caller-supplied business key; RecordID is Mongo's object id and is
// never used as the mutation key.
//
// The Residence_type key keeps its capital R to stay compatible with the
// stroke dataset column name.
type Patient struct {
	RecordID        primitive.ObjectID `json:"record_id,omitempty" bson:"_id,omitempty"`
	PatientID       int                `json:"patient_id" bson:"id"`
	Gender          string             `json:"gender" bson:"gender"`
	Age             int                `json:"age" bson:"age"`
	Hypertension    bool               `json:"hypertension" bson:"hypertension"`
	HeartDisease    bool               `json:"heart_disease" bson:"heart_disease"`
	EverMarried     string             `json:"ever_married" bson:"ever_married"`
	WorkType        string             `json:"work_type" bson:"work_type"`
	ResidenceType   string             `json:"residence_type" bson:"Residence_type"`
	AvgGlucoseLevel float64            `json:"avg_glucose_level" bson:"avg_glucose_level"`
	BMI             float64            `json:"bmi" bson:"bmi"`
	SmokingStatus   string             `json:"smoking_status" bson:"smoking_status"`
	Stroke          bool               `json:"stroke" bson:"stroke"`
}
