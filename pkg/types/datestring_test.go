package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDateStringFromString(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2026-09-07", false},
		{"2026-02-29", true},
		{"07.09.2026", true},
		{"2026-9-7", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NewDateStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDateFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DateString(tt.input), got)
		})
	}
}

func TestDateStringAddDays(t *testing.T) {
	tests := []struct {
		name string
		base DateString
		days int
		want DateString
	}{
		{"within month", "2026-09-07", 6, "2026-09-13"},
		{"month boundary", "2026-09-28", 6, "2026-10-04"},
		{"year boundary", "2026-12-28", 6, "2027-01-03"},
		{"backwards", "2026-09-07", -7, "2026-08-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.base.AddDays(tt.days)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateStringStartOfISOWeek(t *testing.T) {
	tests := []struct {
		name string
		date DateString
		want DateString
	}{
		{"monday", "2026-09-07", "2026-09-07"},
		{"thursday", "2026-09-10", "2026-09-07"},
		{"saturday", "2026-09-12", "2026-09-07"},
		// ISO-неделя начинается с понедельника, воскресенье замыкает её
		{"sunday", "2026-09-13", "2026-09-07"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.date.StartOfISOWeek()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateStringAt(t *testing.T) {
	got, err := DateString("2026-09-07").At("14:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 7, 14, 30, 0, 0, time.UTC), got)

	_, err = DateString("2026-09-07").At("bad")
	assert.Error(t, err)
}
