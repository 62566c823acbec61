package utils

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"techplug_back_end/internal/config"
	"techplug_back_end/internal/models"
	"techplug_back_end/internal/storefront"
)

// Mailer sends order confirmations over SMTP.
type Mailer struct {
	from   string
	logger *zap.Logger
	send   func(ctx context.Context, msg *mail.Msg) error
}

// NewMailer returns nil when no SMTP host is configured.
func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, nil
	}
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	send := func(ctx context.Context, msg *mail.Msg) error {
		return client.DialAndSendWithContext(ctx, msg)
	}
	return &Mailer{from: cfg.From, logger: logger, send: send}, nil
}

// Observe is a storefront.Observer that mails a confirmation for every new
// order. Sending happens in the background.
func (m *Mailer) Observe(e storefront.Event) {
	if e.Topic != storefront.TopicOrders || e.Action != storefront.ActionCreated || e.Order == nil {
		return
	}
	order := e.Order.Clone()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := m.SendOrderConfirmation(ctx, order); err != nil {
			m.logger.Error("order confirmation mail failed",
				zap.String("order_id", order.ID), zap.Error(err))
		}
	}()
}

func (m *Mailer) SendOrderConfirmation(ctx context.Context, order models.Order) error {
	msg, err := m.ConfirmationMessage(order)
	if err != nil {
		return err
	}
	m.logger.Info("sending order confirmation", zap.String("order_id", order.ID), zap.String("to", order.Email))
	return m.send(ctx, msg)
}

func (m *Mailer) ConfirmationMessage(order models.Order) (*mail.Msg, error) {
	body, err := OrderConfirmationHTML(order)
	if err != nil {
		return nil, err
	}
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, err
	}
	if err := msg.To(order.Email); err != nil {
		return nil, err
	}
	msg.Subject("Your TechPlug order " + order.ID)
	msg.SetBodyString(mail.TypeTextHTML, body)

	if png, err := OrderQRCode(order); err == nil {
		if err := msg.AttachReader(order.ID+".png", bytes.NewReader(png)); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Order confirmation</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
	<h2 style="color: #333;">Thanks for your order, {{.CustomerName}}</h2>
	<p>Order <strong>{{.ID}}</strong> is {{.Status}}. We will ship to {{.Address}}.</p>
	<table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
		<thead>
			<tr style="background-color: #f0f0f0;">
				<th style="padding: 10px; text-align: left;">Product</th>
				<th style="padding: 10px; text-align: left;">Qty</th>
				<th style="padding: 10px; text-align: left;">Price</th>
				<th style="padding: 10px; text-align: left;">Total</th>
			</tr>
		</thead>
		<tbody>
		{{- range .Items}}
			<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>R{{.Price.StringFixed 2}}</td><td>R{{.LineTotal.StringFixed 2}}</td></tr>
		{{- end}}
		</tbody>
		<tfoot>
			<tr><td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
			<td style="padding: 10px; font-weight: bold;">R{{.Total.StringFixed 2}}</td></tr>
		</tfoot>
	</table>
	<p>Payment method: {{.PaymentMethod}}</p>
	{{- if .QRCode}}
	<p><img src="{{.QRCode}}" alt="Receipt QR code for {{.ID}}" width="160" height="160"></p>
	{{- end}}
	<p style="margin-top: 30px; color: #555;">The TechPlug team</p>
</div>
</body>
</html>`))

type confirmationView struct {
	models.Order
	QRCode template.URL
}

// OrderConfirmationHTML renders the mail body with the receipt QR code inlined.
func OrderConfirmationHTML(order models.Order) (string, error) {
	view := confirmationView{Order: order}
	if uri, err := OrderQRDataURI(order); err == nil {
		view.QRCode = template.URL(uri)
	}
	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
