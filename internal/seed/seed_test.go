package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleCSV = `id,gender,age,hypertension,heart_disease,ever_married,work_type,Residence_type,avg_glucose_level,bmi,smoking_status,stroke
9046,Male,67,0,1,Yes,Private,Urban,228.69,36.6,formerly smoked,1
51676,Female,61,0,0,Yes,Self-employed,Rural,202.21,N/A,never smoked,1
31112,Other,80,0,1,Yes,Private,Rural,105.92,32.5,never smoked,1
bad-id,Male,54,0,0,Yes,Private,Urban,100.1,27.4,smokes,0
60182,Female,49,1,0,Yes,Private,Urban,171.23,34.4,smokes,0
`

func writeSampleCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stroke.csv")
	assert.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	records, err := loadCSV(writeSampleCSV(t))
	assert.NoError(t, err)

	// The Other-gender row and the unparseable id row are skipped.
	assert.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, 9046, first.PatientID)
	assert.Equal(t, "Male", first.Gender)
	assert.Equal(t, 67, first.Age)
	assert.False(t, first.Hypertension)
	assert.True(t, first.HeartDisease)
	assert.Equal(t, "Urban", first.ResidenceType)
	assert.Equal(t, 228.69, first.AvgGlucoseLevel)
	assert.Equal(t, 36.6, first.BMI)
	assert.True(t, first.Stroke)

	// N/A bmi is coerced to 0, matching the reference import.
	assert.Equal(t, float64(0), records[1].BMI)

	third := records[2]
	assert.Equal(t, 60182, third.PatientID)
	assert.True(t, third.Hypertension)
	assert.False(t, third.Stroke)
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := loadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
