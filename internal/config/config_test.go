package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CREW_JWT_SECRET", testJWTSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "crew_dev", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Database.MaxConns)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.SelfHosted)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CREW_JWT_SECRET", testJWTSecret)
	t.Setenv("CREW_DB_HOST", "db.internal")
	t.Setenv("CREW_DB_PORT", "5433")
	t.Setenv("CREW_JWT_ACCESS_TTL", "30m")
	t.Setenv("CREW_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CREW_SELF_HOSTED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.SelfHosted)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing jwt secret",
			env:     map[string]string{},
			wantErr: "CREW_JWT_SECRET is required",
		},
		{
			name:    "short jwt secret",
			env:     map[string]string{"CREW_JWT_SECRET": "short"},
			wantErr: "at least 32 characters",
		},
		{
			name: "port out of range",
			env: map[string]string{
				"CREW_JWT_SECRET": testJWTSecret,
				"CREW_DB_PORT":    "70000",
			},
			wantErr: "CREW_DB_PORT",
		},
		{
			name: "non-integer port",
			env: map[string]string{
				"CREW_JWT_SECRET": testJWTSecret,
				"CREW_DB_PORT":    "eighty",
			},
			wantErr: "must be an integer",
		},
		{
			name: "bad duration",
			env: map[string]string{
				"CREW_JWT_SECRET":     testJWTSecret,
				"CREW_JWT_ACCESS_TTL": "soon",
			},
			wantErr: "must be a duration",
		},
		{
			name: "negative ttl",
			env: map[string]string{
				"CREW_JWT_SECRET":     testJWTSecret,
				"CREW_JWT_ACCESS_TTL": "-5m",
			},
			wantErr: "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	db := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "crew",
		Password: "hunter2",
		DBName:   "crew_prod",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.internal port=5432 user=crew password=hunter2 dbname=crew_prod sslmode=require",
		db.DSN())
}
