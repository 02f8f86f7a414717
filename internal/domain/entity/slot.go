package entity

import "time"

// Slot is fixed reference data: one of the four daily dialysis time windows.
// The catalog is seeded at startup and never mutated through the API.
type Slot struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(20);uniqueIndex;not null" json:"name"`
	StartTime   string `gorm:"type:varchar(5);not null" json:"start_time"` // Format: HH:MM
	EndTime     string `gorm:"type:varchar(5);not null" json:"end_time"`   // Format: HH:MM
	BedCapacity int    `gorm:"not null" json:"bed_capacity"`

	// Relationships
	Sessions []Session `gorm:"foreignKey:SlotID" json:"sessions,omitempty"`
}

func (Slot) TableName() string {
	return "slots"
}

// Slot ID constants
const (
	SlotIDMorning   = 1
	SlotIDAfternoon = 2
	SlotIDEvening   = 3
	SlotIDNight     = 4
)

// DefaultBedCapacity is the per-slot bed count used when seeding the catalog
const DefaultBedCapacity = 10

// DefaultSlots is the canonical four-window catalog seeded on first startup
func DefaultSlots() []Slot {
	return []Slot{
		{ID: SlotIDMorning, Name: "Morning", StartTime: "07:00", EndTime: "11:00", BedCapacity: DefaultBedCapacity},
		{ID: SlotIDAfternoon, Name: "Afternoon", StartTime: "11:30", EndTime: "15:30", BedCapacity: DefaultBedCapacity},
		{ID: SlotIDEvening, Name: "Evening", StartTime: "16:00", EndTime: "20:00", BedCapacity: DefaultBedCapacity},
		{ID: SlotIDNight, Name: "Night", StartTime: "20:30", EndTime: "00:30", BedCapacity: DefaultBedCapacity},
	}
}

// StartOn resolves the slot's start time on a given calendar date.
// The date's location is preserved so comparisons against wall-clock now work.
func (s *Slot) StartOn(date time.Time) (time.Time, error) {
	start, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), start.Hour(), start.Minute(), 0, 0, date.Location()), nil
}
