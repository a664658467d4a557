package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "HealthcareDB", cfg.MongoDatabase)
	assert.Equal(t, "StrokeData", cfg.PatientCollection)

	// Repository update results rely on RowsAffected counting matched
	// rows; without this flag a no-op profile resubmit would read as
	// "no row matched".
	assert.Contains(t, cfg.MySQLDSN, "clientFoundRows=true")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()
	assert.Equal(t, "9999", cfg.ServerPort)
	assert.Equal(t, 3, cfg.RedisDB)
}
