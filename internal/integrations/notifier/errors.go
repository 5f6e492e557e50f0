package notifier

import "errors"

var (
	// ErrDelivery возвращается, когда сообщение не удалось передать брокеру
	ErrDelivery = errors.New("notifier: delivery failed")

	// ErrNotAcked возвращается, когда брокер отклонил сообщение (nack)
	ErrNotAcked = errors.New("notifier: message was not acknowledged by broker")

	// ErrInternal возвращается при внутренних ошибках клиента (сериализация, подключение)
	ErrInternal = errors.New("notifier: internal error")
)
