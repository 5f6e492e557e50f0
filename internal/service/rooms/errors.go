package rooms

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена (для публичных запросов - и когда неактивна)
	ErrRoomNotFound = errors.New("room not found")

	// ErrFeatureNotFound возвращается при ссылке на несуществующую особенность
	ErrFeatureNotFound = errors.New("feature not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав сотрудника
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
