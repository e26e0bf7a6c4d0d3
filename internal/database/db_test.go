// Copyright 2026 The Linkleaf Authors
// Licensed under the EUPL-1.2

package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenInMemory(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Ping())

	// Migrations have created the schema.
	var tables []string
	err = db.Select(&tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`)
	require.NoError(t, err)
	assert.Contains(t, tables, "users")
	assert.Contains(t, tables, "links")
}

func TestOpenEnforcesForeignKeys(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	var enabled int
	require.NoError(t, db.Get(&enabled, `PRAGMA foreign_keys`))
	assert.Equal(t, 1, enabled)
}

func TestAddDefaultParams(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want []string
	}{
		{
			name: "plain path",
			dsn:  "./data/app.db",
			want: []string{"_txlock=immediate", "_pragma=busy_timeout(5000)", "_pragma=foreign_keys(1)"},
		},
		{
			name: "existing params preserved",
			dsn:  "./data/app.db?_pragma=busy_timeout(100)",
			want: []string{"_pragma=busy_timeout(100)", "_txlock=immediate", "_pragma=foreign_keys(1)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := addDefaultParams(tt.dsn)
			for _, param := range tt.want {
				assert.Contains(t, got, param)
			}
		})
	}
}
