package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBillNumber(t *testing.T) {
	assert.Equal(t, "ABC-20250115-001", FormatBillNumber("ABC", "20250115", 1))
	assert.Equal(t, "ABC-20250115-042", FormatBillNumber("ABC", "20250115", 42))
	assert.Equal(t, "ABC-20250115-999", FormatBillNumber("ABC", "20250115", 999))
}

func TestFormatBillNumberGrowsPastThreeDigits(t *testing.T) {
	assert.Equal(t, "ABC-20250115-1000", FormatBillNumber("ABC", "20250115", 1000))
	assert.Equal(t, "XY-20251231-12345", FormatBillNumber("XY", "20251231", 12345))
}

func TestDay(t *testing.T) {
	ts := time.Date(2025, time.January, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "20250115", Day(ts))
}
