package domain

import (
	"testing"

	"flightschool/internal/domain/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBillableHoursTachoAircraft(t *testing.T) {
	start := models.MeterReadings{Tacho: dec("2750.0"), Hobbs: dec("2800.0")}
	end := models.MeterReadings{Tacho: dec("2752.4"), Hobbs: dec("2802.9")}

	hours, err := BillableHours(start, end, false)
	require.NoError(t, err)
	assert.True(t, hours.Equal(dec("2.4")), "got %s", hours)

	hours, err = BillableHours(start, end, true)
	require.NoError(t, err)
	assert.True(t, hours.Equal(dec("2.9")), "got %s", hours)
}

func TestBillableHoursRejectsNonIncreasingReadings(t *testing.T) {
	start := models.MeterReadings{Tacho: dec("100"), Hobbs: dec("200")}

	_, err := BillableHours(start, models.MeterReadings{Tacho: dec("100"), Hobbs: dec("201")}, false)
	assert.True(t, IsValidation(err))

	_, err = BillableHours(start, models.MeterReadings{Tacho: dec("101"), Hobbs: dec("199.9")}, false)
	assert.True(t, IsValidation(err))
}

func TestComputeFlightCharge(t *testing.T) {
	line, err := ComputeFlightCharge(FlightChargeInput{
		Start:      models.MeterReadings{Tacho: dec("2750.0"), Hobbs: dec("2800.0")},
		End:        models.MeterReadings{Tacho: dec("2751.1"), Hobbs: dec("2801.3")},
		FlightType: models.FlightType{ID: 3, Name: "Dual", HourlyRate: dec("200")},
	})
	require.NoError(t, err)
	assert.True(t, line.Amount.Equal(dec("220")), "got %s", line.Amount)
	assert.True(t, line.Hours.Equal(dec("1.1")))
	assert.Equal(t, int64(3), line.FlightTypeID)
	assert.Equal(t, "Dual flight 1.1 hrs", line.Description)
}

func TestComputeInvoiceTotalsExample(t *testing.T) {
	totals, err := ComputeInvoiceTotals(
		[]models.FlightChargeLine{{Amount: dec("220.00")}},
		[]models.AdditionalChargeLine{
			{Name: "Landing", Amount: dec("45"), Quantity: 1},
			{Name: "Airways", Amount: dec("15"), Quantity: 2},
		},
	)
	require.NoError(t, err)
	assert.True(t, totals.FlightChargeTotal.Equal(dec("220")))
	assert.True(t, totals.AdditionalChargesTotal.Equal(dec("75")))
	assert.True(t, totals.TotalAmount.Equal(dec("295.00")))
}

func TestComputeInvoiceTotalsValidation(t *testing.T) {
	_, err := ComputeInvoiceTotals(nil, []models.AdditionalChargeLine{{Amount: dec("10"), Quantity: 0}})
	assert.True(t, IsValidation(err))

	_, err = ComputeInvoiceTotals(nil, []models.AdditionalChargeLine{{Amount: dec("-1"), Quantity: 1}})
	assert.True(t, IsValidation(err))

	totals, err := ComputeInvoiceTotals(nil, nil)
	require.NoError(t, err)
	assert.True(t, totals.TotalAmount.IsZero())
}

func TestSplitCredit(t *testing.T) {
	tests := []struct {
		name               string
		requested, balance string
		total              string
		credit, remainder  string
	}{
		{"covers all", "300", "500", "295", "295", "0"},
		{"limited by balance", "300", "100", "295", "100", "195"},
		{"limited by request", "50", "500", "295", "50", "245"},
		{"negative request", "-5", "500", "295", "0", "295"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			credit, rem := SplitCredit(dec(tt.requested), dec(tt.balance), dec(tt.total))
			assert.True(t, credit.Equal(dec(tt.credit)), "credit %s", credit)
			assert.True(t, rem.Equal(dec(tt.remainder)), "remainder %s", rem)
		})
	}
}

func TestAggregateRatings(t *testing.T) {
	avg, n, err := AggregateRatings(map[string]int{"takeoff": 4, "landing": 3, "radio": 5})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.True(t, avg.Equal(dec("4")))

	avg, n, err = AggregateRatings(map[string]int{"takeoff": 4, "landing": 3})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, avg.Equal(dec("3.5")))

	avg, n, err = AggregateRatings(nil)
	require.NoError(t, err)
	assert.Nil(t, avg)
	assert.Zero(t, n)

	_, _, err = AggregateRatings(map[string]int{"landing": 6})
	assert.True(t, IsValidation(err))

	_, _, err = AggregateRatings(map[string]int{"parking": 3})
	assert.True(t, IsValidation(err))
}
