package email

import (
	"bytes"
	"html/template"
	"time"
)

// One typed template per email kind. Each knows its subject line and
// renders its own HTML body; there is no generic key/value context.

const timeLayout = "2006-01-02 15:04:05"

var contactConfirmationTmpl = template.Must(template.New("contact_confirmation").Parse(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h1 style="color:#0056b3">Confirmación de Mensaje Recibido</h1>
  <p>Estimado/a <strong>{{.Name}}</strong>,</p>
  <h2 style="color:#0056b3">Detalles de tu Mensaje:</h2>
  <ul>
    <li><strong>Nombres:</strong> {{.Name}}</li>
    <li><strong>Email:</strong> {{.Email}}</li>
    <li><strong>Mensaje:</strong> {{.Body}}</li>
    {{if .Country}}<li><strong>País:</strong> {{.Country}}</li>{{end}}
    {{if .ClientIP}}<li><strong>IP:</strong> {{.ClientIP}}</li>{{end}}
    <li><strong>Fecha y Hora:</strong> {{.SentAtFormatted}}</li>
  </ul>
  <p style="color:#777">Atentamente,<br>El equipo de Ciclexpress<br><br>
  <small>Este es un correo automático</small></p>
</div>`))

var adminReplyTmpl = template.Must(template.New("admin_reply").Parse(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h1 style="color:#0056b3">Respuesta a tu Mensaje</h1>
  <p>Estimado/a <strong>{{.Name}}</strong>,</p>
  <p>Hemos respondido a tu consulta:</p>
  <blockquote style="border-left:3px solid #ddd;padding-left:10px;color:#555">{{.OriginalMessage}}</blockquote>
  <h2 style="color:#0056b3">Nuestra respuesta:</h2>
  <p>{{.Reply}}</p>
  <p style="color:#777">Atentamente,<br>{{.RepliedBy}} — Ciclexpress</p>
</div>`))

var paymentReceiptTmpl = template.Must(template.New("payment_receipt").Parse(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h1 style="color:#0056b3">Confirmación de Pago</h1>
  <p>Estimado/a <strong>{{.Name}}</strong>,</p>
  <h2 style="color:#0056b3">Detalles de la Transacción:</h2>
  <ul>
    <li><strong>Transacción:</strong> {{.TransactionID}}</li>
    <li><strong>Monto:</strong> {{.Amount}} {{.Currency}}</li>
    <li><strong>Descripción:</strong> {{.Description}}</li>
    <li><strong>Fecha y Hora:</strong> {{.PaidAtFormatted}}</li>
  </ul>
  <p>Tu pedido ha sido procesado. Si tienes alguna pregunta, no dudes en contactarnos.</p>
  <p style="color:#777">Atentamente,<br>El equipo de Ciclexpress</p>
</div>`))

// ContactConfirmation is sent after a contact-form submission is saved.
type ContactConfirmation struct {
	Name     string
	Email    string
	Body     string
	Country  string
	ClientIP string
	SentAt   time.Time
}

func (c ContactConfirmation) Subject() string {
	return "Confirmación de mensaje recibido de la aplicación"
}

func (c ContactConfirmation) SentAtFormatted() string {
	return c.SentAt.Format(timeLayout)
}

func (c ContactConfirmation) Render() (string, error) {
	return render(contactConfirmationTmpl, c)
}

// AdminReply is sent to the original submitter when an admin answers.
type AdminReply struct {
	Name            string
	OriginalMessage string
	Reply           string
	RepliedBy       string
}

func (a AdminReply) Subject() string {
	return "Respuesta a tu mensaje - Ciclexpress"
}

func (a AdminReply) Render() (string, error) {
	return render(adminReplyTmpl, a)
}

// PaymentReceipt is sent after a completed charge.
type PaymentReceipt struct {
	Name          string
	TransactionID string
	Amount        string
	Currency      string
	Description   string
	PaidAt        time.Time
}

func (p PaymentReceipt) Subject() string {
	return "Confirmación de tu Pago - Transacción " + p.TransactionID
}

func (p PaymentReceipt) PaidAtFormatted() string {
	return p.PaidAt.Format(timeLayout)
}

func (p PaymentReceipt) Render() (string, error) {
	return render(paymentReceiptTmpl, p)
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
