package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectorFor(t *testing.T) {
	tests := []struct {
		url    string
		driver string
	}{
		{"postgres://u:p@localhost:5432/db?sslmode=disable", "postgres"},
		{"postgresql://localhost/db", "postgres"},
		{"host=localhost user=u dbname=db", "postgres"},
		{"sqlite://gridiron.db", "sqlite"},
		{":memory:", "sqlite"},
		{"/tmp/matches.db", "sqlite"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			_, driver := dialectorFor(tt.url)
			assert.Equal(t, tt.driver, driver)
		})
	}
}

func TestNewConnection_SQLiteMemory(t *testing.T) {
	db, err := NewConnection(":memory:", false)
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.HealthCheck(context.Background()))
}
