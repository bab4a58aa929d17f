package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		major  int64
		minor  int64
	}{
		{"zero", 0, 0, 0},
		{"whole units", 150.00, 150, 0},
		{"units and subunits", 89.99, 89, 99},
		{"half rounds up", 1.125, 1, 13},
		{"carry into major units", 1.999, 2, 0},
		{"large amount", 1234567.89, 1234567, 89},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitAmount(tt.amount)
			assert.NoError(t, err)
			assert.Equal(t, tt.major, got.Major)
			assert.Equal(t, tt.minor, got.Minor)
			assert.GreaterOrEqual(t, got.Minor, int64(0))
			assert.LessOrEqual(t, got.Minor, int64(99))
		})
	}
}

func TestSplitAmountInvalid(t *testing.T) {
	for _, amount := range []float64{-1, -0.01, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := SplitAmount(amount)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}

func TestChequeRecordTransitionsAllowed(t *testing.T) {
	issued := &ChequeRecord{Status: ChequeStatusIssued}
	assert.True(t, issued.MayPrint())
	assert.True(t, issued.MayVoid())

	printed := &ChequeRecord{Status: ChequeStatusPrinted}
	assert.True(t, printed.MayPrint(), "reprinting is allowed")
	assert.True(t, printed.MayVoid())

	voided := &ChequeRecord{Status: ChequeStatusVoided}
	assert.False(t, voided.MayPrint())
	assert.False(t, voided.MayVoid())
}
