package dto

// Response DTOs for schedule queries

// SlotResponse is the slot reference data exposed to clients
type SlotResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	BedCapacity int    `json:"bed_capacity"`
}

// SlotScheduleResponse groups a day's sessions under their slot
type SlotScheduleResponse struct {
	Slot     SlotResponse      `json:"slot"`
	Sessions []SessionResponse `json:"sessions"`
}

// DailyScheduleResponse is the full board for one calendar date
type DailyScheduleResponse struct {
	Date  string                 `json:"date"`
	Slots []SlotScheduleResponse `json:"slots"`
	Total int                    `json:"total"`
}

// BedAvailabilityResponse lists the free beds for a (date, slot)
type BedAvailabilityResponse struct {
	Date          string `json:"date"`
	SlotID        int    `json:"slot_id"`
	SlotName      string `json:"slot_name"`
	BedCapacity   int    `json:"bed_capacity"`
	AvailableBeds []int  `json:"available_beds"`
	OccupiedBeds  []int  `json:"occupied_beds"`
}

// BedConflictResponse names the occupant blocking a bed assignment
type BedConflictResponse struct {
	BedNumber   int    `json:"bed_number"`
	SessionID   string `json:"session_id"`
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name,omitempty"`
}
