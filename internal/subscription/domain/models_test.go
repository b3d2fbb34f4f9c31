package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBillingCycleAdvance(t *testing.T) {
	start := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC), BillingCycleMonthly.Advance(start))
	assert.Equal(t, time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC), BillingCycleYearly.Advance(start))

	// Calendar-month advance, so December rolls into the next year.
	december := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), BillingCycleMonthly.Advance(december))
}
