package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrPersistenceConflict возвращается, когда БД отклонила запись из-за параллельной транзакции
	// (нарушение ограничения исключения, уникальности или конфликт сериализации)
	ErrPersistenceConflict = errors.New("booking.repository: persistence conflict")

	// ErrRoomReference возвращается при ссылке на несуществующую комнату
	ErrRoomReference = errors.New("booking.repository: room does not exist")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
