package create_appointment

import (
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Request модель запроса на создание записи. Дата и время приходят в сыром виде
type Request struct {
	ClientName  string  // Имя клиента
	ClientEmail string  // Email клиента
	Date        string  // YYYY-MM-DD или ISO instant
	Time        string  // HH:MM из сетки слотов
	Service     string  // Услуга (Corte, Barba, Corte + Barba)
	BarberID    *string // Парикмахер (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment
}
