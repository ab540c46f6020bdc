package format

import (
	"testing"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDate(t *testing.T) {
	assert.Equal(t, "2024-01-05", Date(time.Date(2024, 1, 5, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, "", Date(time.Time{}))
}

func TestPrice(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"100", "100.00 AZN"},
		{"1250", "1,250.00 AZN"},
		{"1250000.5", "1,250,000.50 AZN"},
		{"-300", "-300.00 AZN"},
		{"", "0.00 AZN"},
		{"n/a", "n/a AZN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Price(tt.input))
	}
}

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"+994 (50) 123-45-67", "994501234567"},
		{"0501234567", "0501234567"},
		{"abc", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DigitsOnly(tt.input))
	}
}

func TestSortTimes(t *testing.T) {
	times := []string{"09:30", "09:05", "10:00"}
	SortTimes(times)
	assert.Equal(t, []string{"09:05", "09:30", "10:00"}, times)

	withJunk := []string{"12:15", "bogus", "08:45", "25:00", "08:05"}
	SortTimes(withJunk)
	assert.Equal(t, []string{"08:05", "08:45", "12:15", "bogus", "25:00"}, withJunk)
}

func TestSortSlots(t *testing.T) {
	slots := []models.BookingTime{
		{ID: 1, Time: "14:30"},
		{ID: 2, Time: "09:00"},
		{ID: 3, Time: "14:05"},
	}
	SortSlots(slots)

	assert.Equal(t, int64(2), slots[0].ID)
	assert.Equal(t, int64(3), slots[1].ID)
	assert.Equal(t, int64(1), slots[2].ID)
}

func TestRoleName(t *testing.T) {
	assert.Equal(t, "Doctor", RoleName("doctor"))
	assert.Equal(t, "Super admin", RoleName("super_admin"))
	assert.Equal(t, "janitor", RoleName("janitor"))
}
