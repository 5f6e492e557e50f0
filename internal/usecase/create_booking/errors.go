package create_booking

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена или неактивна
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrNotificationFailed возвращается, когда обязательное подтверждение не удалось отправить.
	// Бронирование в этом случае не сохраняется.
	ErrNotificationFailed = errors.New("create_booking: confirmation could not be sent")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
