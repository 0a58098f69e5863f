package repositories

import (
	"context"
	"testing"

	"flightschool/internal/domain"
	"flightschool/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAircraftUpdateMetersChecksPreviousReadings(t *testing.T) {
	db, mock := newMock(t)
	prev := models.MeterReadings{Tacho: decimal.RequireFromString("2750.0"), Hobbs: decimal.RequireFromString("3100.0")}
	next := models.MeterReadings{Tacho: decimal.RequireFromString("2752.4"), Hobbs: decimal.RequireFromString("3102.6")}

	mock.ExpectExec("UPDATE aircraft SET current_tacho = \\?, current_hobbs = \\?").
		WithArgs("2752.4", "3102.6", sqlmock.AnyArg(), int64(3), "2750", "3100").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, AircraftRepository{DB: db}.UpdateMeters(context.Background(), 3, prev, next))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAircraftUpdateMetersConflict(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("UPDATE aircraft SET current_tacho").WillReturnResult(sqlmock.NewResult(0, 0))

	err := AircraftRepository{DB: db}.UpdateMeters(context.Background(), 3, models.MeterReadings{}, models.MeterReadings{})
	assert.True(t, domain.IsConflict(err))
}
