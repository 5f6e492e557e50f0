package domain

import "time"

// Booking duration limits
const (
	DefaultMinBookingDuration = 30 * time.Minute
	DefaultMaxBookingDuration = 8 * time.Hour
)

// Catalog and input constraints
const (
	MinRoomCapacity       = 1
	MaxRoomNameLength     = 200
	MaxFeatureNameLength  = 100
	MaxFeatureIconLength  = 50
	MaxCustomerNameLength = 100
	MaxNotesLength        = 2000
	DefaultPageSize       = 20
)

// Time format constants
const (
	DateFormat          = "2006-01-02"       // YYYY-MM-DD
	DateTimeLocalFormat = "2006-01-02T15:04" // значение <input type="datetime-local">
	DisplayDateTime     = "02.01.2006 15:04" // формат в уведомлениях
	DisplayTime         = "15:04"
)

// ActiveStatuses статусы, занимающие интервал комнаты
// Используются в проверке пересечений
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
