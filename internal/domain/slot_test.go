package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceSlots(t *testing.T) {
	tests := []struct {
		name     string
		free     []TimeInterval
		duration int
		want     []TimeInterval
	}{
		{
			name:     "exact fit yields consecutive slots",
			free:     []TimeInterval{ival("2026-09-07", "09:00:00", "10:30:00")},
			duration: 30,
			want: []TimeInterval{
				ival("2026-09-07", "09:00:00", "09:30:00"),
				ival("2026-09-07", "09:30:00", "10:00:00"),
				ival("2026-09-07", "10:00:00", "10:30:00"),
			},
		},
		{
			name:     "trailing remainder shorter than duration is dropped",
			free:     []TimeInterval{ival("2026-09-07", "09:00:00", "10:00:00")},
			duration: 45,
			want:     []TimeInterval{ival("2026-09-07", "09:00:00", "09:45:00")},
		},
		{
			name:     "interval shorter than duration yields nothing",
			free:     []TimeInterval{ival("2026-09-07", "09:00:00", "09:20:00")},
			duration: 30,
			want:     []TimeInterval{},
		},
		{
			name: "slots from several intervals come out sorted",
			free: []TimeInterval{
				ival("2026-09-08", "10:00:00", "11:00:00"),
				ival("2026-09-07", "15:00:00", "16:00:00"),
			},
			duration: 60,
			want: []TimeInterval{
				ival("2026-09-07", "15:00:00", "16:00:00"),
				ival("2026-09-08", "10:00:00", "11:00:00"),
			},
		},
		{
			name:     "no free intervals",
			free:     nil,
			duration: 30,
			want:     []TimeInterval{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := SliceSlots(tt.free, tt.duration)
			require.NoError(t, err)

			got := make([]TimeInterval, len(slots))
			for i, slot := range slots {
				assert.Equal(t, tt.duration, slot.DurationMinutes)
				got[i] = slot.Interval
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSliceSlotsInvalidDuration(t *testing.T) {
	free := []TimeInterval{ival("2026-09-07", "09:00:00", "12:00:00")}

	_, err := SliceSlots(free, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = SliceSlots(free, -15)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestSliceSlotsNearMidnight(t *testing.T) {
	// The last slot ends exactly at the interval end; nothing runs past midnight
	free := []TimeInterval{ival("2026-09-07", "23:00:00", "23:59:00")}

	slots, err := SliceSlots(free, 30)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, ival("2026-09-07", "23:00:00", "23:30:00"), slots[0].Interval)
}

func TestSliceSlotsDoNotOverlap(t *testing.T) {
	free := []TimeInterval{ival("2026-09-07", "09:00:00", "13:00:00")}

	slots, err := SliceSlots(free, 50)
	require.NoError(t, err)
	for i := 1; i < len(slots); i++ {
		assert.False(t, slots[i].Interval.Overlaps(slots[i-1].Interval))
	}
}
