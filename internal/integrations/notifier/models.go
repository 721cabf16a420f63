package notifier

import "time"

// notifyRequest тело запроса к сервису уведомлений.
// Сервис сам решает, каким каналом и в каком виде доставить сообщение;
// здесь только тип события и его параметры.
type notifyRequest struct {
	Type            string     `json:"type"`
	CustomerID      string     `json:"customer_id,omitempty"`
	PackageName     string     `json:"package_name"`
	AppointmentTime *time.Time `json:"appointment_time,omitempty"`
	RoomCode        *string    `json:"room_code,omitempty"`
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
