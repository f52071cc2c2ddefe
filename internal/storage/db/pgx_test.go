package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/config"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/storage/db"
)

func TestConnectionString(t *testing.T) {
	cfg := config.Postgres{
		Host:     "db",
		Port:     5433,
		User:     "u",
		Password: "p",
		DB:       "shipments",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://u:p@db:5433/shipments?sslmode=disable", db.ConnectionString(cfg))
}
