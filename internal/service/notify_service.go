package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"github.com/alibiomar/meninx/internal/db"
	"github.com/alibiomar/meninx/internal/entities"
	"github.com/alibiomar/meninx/internal/metrics"
)

// NotifyService sends the post-reservation messages: a notification to the
// back office and a confirmation to the customer, each as HTML mail with a
// plain-text fallback, plus an optional SMS when Twilio is configured.
// It satisfies booking.Notifier. Every send is best-effort.
type NotifyService struct {
	adminEmail   string
	smsEnabled   bool
	adminTmpl    *template.Template
	customerTmpl *template.Template
}

func NewNotifyService(adminEmail string, smsEnabled bool) *NotifyService {
	s := &NotifyService{adminEmail: adminEmail, smsEnabled: smsEnabled}

	var err error
	s.adminTmpl, err = template.ParseFiles(filepath.Join("internal", "templates", "admin_email.html"))
	if err != nil {
		log.Printf("WARNING: could not parse admin email template: %v", err)
	}
	s.customerTmpl, err = template.ParseFiles(filepath.Join("internal", "templates", "customer_email.html"))
	if err != nil {
		log.Printf("WARNING: could not parse customer email template: %v", err)
	}
	return s
}

func emailData(res db.Reservation) entities.ReservationEmailData {
	return entities.ReservationEmailData{
		CustomerName:       res.CustomerName,
		CustomerEmail:      res.CustomerEmail,
		CustomerPhone:      res.CustomerPhone,
		ReservationCode:    res.Code,
		CarLabel:           fmt.Sprintf("%d %s %s", res.CarYear, res.CarMake, res.CarModel),
		StartDateFormatted: res.StartDate.Format("02/01/2006"),
		EndDateFormatted:   res.EndDate.Format("02/01/2006"),
		TotalPrice:         res.TotalPrice,
		CurrentYear:        time.Now().Year(),
	}
}

// NotifyAdmin mails the new-reservation details to the back office.
func (s *NotifyService) NotifyAdmin(res db.Reservation) error {
	if s.adminEmail == "" {
		log.Println("WARNING: ADMIN_EMAIL not set, skipping admin notification")
		return nil
	}

	data := emailData(res)
	subject := fmt.Sprintf("Nouvelle réservation de voiture - %s %s", res.CarMake, res.CarModel)
	plainBody := fmt.Sprintf(
		"Nouvelle réservation de voiture\n\n"+
			"Client: %s\nEmail: %s\nTéléphone: %s\n\n"+
			"Véhicule: %s\n"+
			"Prise en charge: %s\nRetour: %s\n"+
			"Prix total: %.2f TND\n\n"+
			"Code de réservation: %s",
		data.CustomerName, data.CustomerEmail, data.CustomerPhone,
		data.CarLabel, data.StartDateFormatted, data.EndDateFormatted,
		data.TotalPrice, data.ReservationCode,
	)

	err := SendEmailWithSendGrid(s.adminEmail, "Administration", subject, plainBody, s.render(s.adminTmpl, data))
	s.count("admin_email", err)
	return err
}

// NotifyCustomer mails the confirmation to the customer, and sends an SMS
// when the Twilio channel is enabled.
func (s *NotifyService) NotifyCustomer(res db.Reservation) error {
	data := emailData(res)
	subject := "Confirmation de votre réservation de voiture"
	plainBody := fmt.Sprintf(
		"Bonjour %s,\n\n"+
			"Votre réservation (code: %s) a été enregistrée avec succès.\n\n"+
			"Véhicule: %s\n"+
			"Prise en charge: %s\nRetour: %s\n"+
			"Prix total: %.2f TND\n\n"+
			"Merci de nous avoir choisis !",
		data.CustomerName, data.ReservationCode, data.CarLabel,
		data.StartDateFormatted, data.EndDateFormatted, data.TotalPrice,
	)

	err := SendEmailWithSendGrid(res.CustomerEmail, res.CustomerName, subject, plainBody, s.render(s.customerTmpl, data))
	s.count("customer_email", err)

	if s.smsEnabled {
		sms := fmt.Sprintf("Votre réservation %s est enregistrée. Prise en charge: %s. Détails par email.",
			data.ReservationCode, data.StartDateFormatted)
		if smsErr := SendSMS(res.CustomerPhone, sms); smsErr != nil {
			// The email is the contractual notification; SMS loss is only logged.
			log.Printf("SMS confirmation for reservation %s failed: %v", res.Code, smsErr)
			s.count("customer_sms", smsErr)
		} else {
			s.count("customer_sms", nil)
		}
	}
	return err
}

func (s *NotifyService) render(tmpl *template.Template, data entities.ReservationEmailData) string {
	if tmpl == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("WARNING: rendering email template for reservation %s: %v", data.ReservationCode, err)
		return ""
	}
	return buf.String()
}

func (s *NotifyService) count(channel string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.NotificationsSent.WithLabelValues(channel, status).Inc()
}
