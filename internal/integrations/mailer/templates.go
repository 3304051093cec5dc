package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

var confirmationHTML = template.Must(template.New("confirmation").Parse(`<p>Здравствуйте, {{.Name}}!</p>
<p>Вы записаны на «{{.Service}}» {{.Date}} в {{.Time}}.</p>
<p>Статус записи: {{.Status}}.</p>`))

type confirmationData struct {
	Name    string
	Service string
	Date    string
	Time    string
	Status  string
}

// BookingConfirmation собирает письмо-подтверждение записи
func BookingConfirmation(b *domain.Booking) (Email, error) {
	data := confirmationData{
		Name:    b.CustomerName,
		Service: b.ServiceName,
		Date:    b.Date.Format(domain.DateFormat),
		Time:    b.StartTime.String(),
		Status:  string(b.Status),
	}

	var html bytes.Buffer
	if err := confirmationHTML.Execute(&html, data); err != nil {
		return Email{}, fmt.Errorf("render confirmation: %w", err)
	}

	return Email{
		To:      b.CustomerEmail,
		Subject: "Запись подтверждена",
		HTML:    html.String(),
		Text: fmt.Sprintf("Здравствуйте, %s! Вы записаны на «%s» %s в %s. Статус записи: %s.",
			data.Name, data.Service, data.Date, data.Time, data.Status),
	}, nil
}

// BookingMoved собирает письмо о переносе записи
func BookingMoved(b *domain.Booking) Email {
	return Email{
		To:      b.CustomerEmail,
		Subject: "Запись перенесена",
		Text: fmt.Sprintf("Здравствуйте, %s! Ваша запись на «%s» перенесена на %s %s.",
			b.CustomerName, b.ServiceName, b.Date.Format(domain.DateFormat), b.StartTime),
	}
}

// BookingCancelled собирает письмо об отмене записи
func BookingCancelled(b *domain.Booking) Email {
	return Email{
		To:      b.CustomerEmail,
		Subject: "Запись отменена",
		Text: fmt.Sprintf("Здравствуйте, %s! Ваша запись на «%s» %s %s отменена.",
			b.CustomerName, b.ServiceName, b.Date.Format(domain.DateFormat), b.StartTime),
	}
}
