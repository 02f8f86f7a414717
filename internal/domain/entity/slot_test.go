package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSlots_Catalog(t *testing.T) {
	slots := DefaultSlots()
	require.Len(t, slots, 4)

	for _, slot := range slots {
		assert.Equal(t, DefaultBedCapacity, slot.BedCapacity)
		assert.NotEmpty(t, slot.Name)
	}

	assert.Equal(t, "07:00", slots[0].StartTime)
	assert.Equal(t, "20:30", slots[3].StartTime)
}

func TestSlotStartOn(t *testing.T) {
	slot := Slot{StartTime: "11:30"}
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	start, err := slot.StartOn(day)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 11, 30, 0, 0, time.UTC), start)

	bad := Slot{StartTime: "25:99"}
	_, err = bad.StartOn(day)
	assert.Error(t, err)
}
