package bookingvalidator

import "errors"

// ErrStore возвращается, когда не удалось прочитать бронирования для проверки пересечений
var ErrStore = errors.New("bookingvalidator: failed to read bookings")
