// Package contact implements the contact form: field normalization and
// validation, the bot-challenge submission state machine, and delivery to the
// Contact Form 7 endpoint.
package contact

import (
	"net/mail"
	"slices"
	"strings"
)

// User-facing messages.
const (
	MsgSuccess           = "¡Gracias por tu interés! Te contactaremos pronto."
	MsgFailure           = "No se pudo enviar el formulario. Intenta de nuevo."
	MsgInvalidRUT        = "Por favor ingresa un RUT válido."
	MsgInvalidPhone      = "Por favor ingresa un teléfono válido."
	MsgInvalidEmail      = "Por favor ingresa un correo electrónico válido."
	MsgInvalidRegion     = "Por favor selecciona tu región."
	MsgInvalidSubject    = "Por favor selecciona el motivo de tu consulta."
	MsgMissingFields     = "Por favor completa todos los campos obligatorios."
	MsgChallengeNotReady = "Captcha aún no está listo. Intenta nuevamente."
)

// Regions lists the selectable regions in display order.
var Regions = []string{
	"Arica y Parinacota",
	"Tarapaca",
	"Antofagasta",
	"Atacama",
	"Coquimbo",
	"Valparaiso",
	"Metropolitana",
	"O'Higgins",
	"Maule",
	"Nuble",
	"Biobio",
	"Araucania",
	"Los Rios",
	"Los Lagos",
	"Aysen",
	"Magallanes",
}

// Subjects lists the selectable consultation reasons in display order.
var Subjects = []string{
	"Primera asesoria gratuita",
	"Informacion sobre el proceso",
	"Consulta sobre requisitos",
	"Revision de mi situacion financiera",
	"Agendar reunion presencial",
	"Otros",
}

// Form holds the submitted contact fields. The form tags match the field
// names posted to the form endpoint.
type Form struct {
	Name     string `form:"nombre"`
	Surname  string `form:"apellido"`
	RUT      string `form:"rut"`
	Region   string `form:"region"`
	Comuna   string `form:"comuna"`
	Subject  string `form:"asunto"`
	Phone    string `form:"telefono"`
	Email    string `form:"correo"`
	Comments string `form:"comentarios"`
}

// Normalized returns a copy with surrounding whitespace trimmed and the RUT
// and phone rendered in their display formats.
func (f Form) Normalized() Form {
	return Form{
		Name:     strings.TrimSpace(f.Name),
		Surname:  strings.TrimSpace(f.Surname),
		RUT:      FormatRUT(f.RUT),
		Region:   strings.TrimSpace(f.Region),
		Comuna:   strings.TrimSpace(f.Comuna),
		Subject:  strings.TrimSpace(f.Subject),
		Phone:    FormatPhone(f.Phone),
		Email:    strings.TrimSpace(f.Email),
		Comments: strings.TrimSpace(f.Comments),
	}
}

// Fields returns the multipart payload for the form endpoint.
func (f Form) Fields(token string) map[string]string {
	return map[string]string{
		"nombre":                f.Name,
		"apellido":              f.Surname,
		"rut":                   f.RUT,
		"region":                f.Region,
		"comuna":                f.Comuna,
		"asunto":                f.Subject,
		"telefono":              f.Phone,
		"correo":                f.Email,
		"comentarios":           f.Comments,
		"cf-turnstile-response": token,
	}
}

// ValidationError rejects a submission before anything is sent. Message is
// shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// Validate checks f in a fixed order: RUT check digit, phone length, then the
// remaining required fields and the closed lists. The first failure wins.
func Validate(f Form) error {
	if !ValidRUT(f.RUT) {
		return invalid("rut", MsgInvalidRUT)
	}
	if phone := FormatPhone(f.Phone); len(phone) < 8 {
		return invalid("telefono", MsgInvalidPhone)
	}
	for _, req := range []struct{ field, value string }{
		{"nombre", f.Name},
		{"apellido", f.Surname},
		{"comuna", f.Comuna},
	} {
		if strings.TrimSpace(req.value) == "" {
			return invalid(req.field, MsgMissingFields)
		}
	}
	if !slices.Contains(Regions, f.Region) {
		return invalid("region", MsgInvalidRegion)
	}
	if !slices.Contains(Subjects, f.Subject) {
		return invalid("asunto", MsgInvalidSubject)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(f.Email)); err != nil {
		return invalid("correo", MsgInvalidEmail)
	}
	return nil
}
