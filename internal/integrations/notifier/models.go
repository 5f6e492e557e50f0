package notifier

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Message уведомление клиенту о созданном бронировании.
// Доставку письма выполняет потребитель очереди.
type Message struct {
	BookingID        int64     `json:"bookingId"`
	To               string    `json:"to"`
	Subject          string    `json:"subject"`
	Body             string    `json:"body"`
	CustomerName     string    `json:"customerName"`
	RoomName         string    `json:"roomName"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	Status           string    `json:"status"`
	StatusLabel      string    `json:"statusLabel"`
	ConfirmationCode string    `json:"confirmationCode"`
}

// NewBookingMessage формирует подтверждение бронирования; время выводится в часовом поясе loc
func NewBookingMessage(b *domain.Booking, loc *time.Location) Message {
	start := b.StartTime.In(loc)
	end := b.EndTime.In(loc)

	body := fmt.Sprintf(
		"Спасибо за бронирование, %s!\n\n"+
			"Детали бронирования:\n"+
			"Комната: %s\n"+
			"Дата и время: %s - %s\n"+
			"Статус: %s\n\n"+
			"Код подтверждения: %s\n\n"+
			"Если вы не делали это бронирование, пожалуйста, сообщите нам.",
		b.CustomerName,
		b.RoomName,
		start.Format(domain.DisplayDateTime),
		end.Format(domain.DisplayTime),
		b.Status.Label(),
		b.ConfirmationCode,
	)

	return Message{
		BookingID:        b.ID,
		To:               b.CustomerEmail,
		Subject:          fmt.Sprintf("Подтверждение бронирования #%d", b.ID),
		Body:             body,
		CustomerName:     b.CustomerName,
		RoomName:         b.RoomName,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		Status:           string(b.Status),
		StatusLabel:      b.Status.Label(),
		ConfirmationCode: b.ConfirmationCode.String(),
	}
}
