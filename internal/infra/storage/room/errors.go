package room

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("room.repository: room not found")

	// ErrFeatureNotFound возвращается при ссылке на несуществующую особенность
	ErrFeatureNotFound = errors.New("room.repository: feature not found")

	// ErrConstraint возвращается, когда данные нарушают ограничения таблицы (capacity, price)
	ErrConstraint = errors.New("room.repository: constraint violation")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("room.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("room.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("room.repository: failed to scan row")
)
