package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"seatreservation/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

const reservationConfirmed = "reservation_confirmed"

// startTimeLayout is how event start times appear in every mail.
const startTimeLayout = "Mon, 02 Jan 2006 15:04 MST"

var templateFuncs = map[string]any{
	"seatLabel": func(row, number string) string { return row + number },
	"startsAt":  func(t time.Time) string { return t.Format(startTimeLayout) },
}

// mailTemplates is one parsed message: subject and text bodies are plain text, html is escaped.
type mailTemplates struct {
	subject *texttemplate.Template
	html    *htmltemplate.Template
	text    *texttemplate.Template
}

func (m *mailTemplates) execute(data any) (subject, html, text string, err error) {
	var buf bytes.Buffer
	if err = m.subject.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	subject = strings.TrimSpace(buf.String())
	buf.Reset()
	if err = m.html.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	html = buf.String()
	buf.Reset()
	if err = m.text.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return subject, html, buf.String(), nil
}

// templateRenderer implements domain.EmailTemplateRenderer using embedded template files.
type templateRenderer struct {
	confirmed *mailTemplates
}

// NewTemplateRenderer parses the embedded templates once.
func NewTemplateRenderer() (domain.EmailTemplateRenderer, error) {
	confirmed, err := parseMail(reservationConfirmed)
	if err != nil {
		return nil, err
	}
	return &templateRenderer{confirmed: confirmed}, nil
}

func parseMail(name string) (*mailTemplates, error) {
	subject, err := texttemplate.New(name+"_subject.txt").Funcs(templateFuncs).ParseFS(templateFS, "templates/"+name+"_subject.txt")
	if err != nil {
		return nil, fmt.Errorf("parse %s subject: %w", name, err)
	}
	html, err := htmltemplate.New(name+".html").Funcs(templateFuncs).ParseFS(templateFS, "templates/"+name+".html")
	if err != nil {
		return nil, fmt.Errorf("parse %s html: %w", name, err)
	}
	text, err := texttemplate.New(name+".txt").Funcs(templateFuncs).ParseFS(templateFS, "templates/"+name+".txt")
	if err != nil {
		return nil, fmt.Errorf("parse %s text: %w", name, err)
	}
	return &mailTemplates{subject: subject, html: html, text: text}, nil
}

// ReservationConfirmed renders the confirmation for one seat, addressed to data.Email.
func (r *templateRenderer) ReservationConfirmed(data *domain.ReservationConfirmedEmailData) (*domain.Email, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: reservation confirmed data is nil", domain.ErrInvalidInput)
	}
	subject, html, text, err := r.confirmed.execute(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", reservationConfirmed, err)
	}
	return &domain.Email{
		To:      data.Email,
		Subject: subject,
		HTML:    html,
		Text:    text,
		Tags: map[string]string{
			"kind":           reservationConfirmed,
			"reservation_id": data.ReservationID,
		},
	}, nil
}
