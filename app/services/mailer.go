package services

import (
	"fmt"
	"html"
	"net/smtp"
	"strings"

	"github.com/Rakhulsr/go-cosmetics/app/logger"
	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/Rakhulsr/go-cosmetics/app/utils/format"
)

// EmailSender delivers a rendered HTML email.
type EmailSender interface {
	SendHTMLEmail(to, subject, htmlBody string) error
}

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type Mailer struct {
	config Config
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{
		config: cfg,
	}
}

func (m *Mailer) SendHTMLEmail(to, subject, htmlBody string) error {
	headers := []string{
		"From: " + m.config.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg)); err != nil {
		logger.Warn("Mailer.SendHTMLEmail: send failed", "to", to, "error", err)
		return fmt.Errorf("failed to send HTML email: %w", err)
	}
	return nil
}

const emailLayout = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>%s</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 20px auto; padding: 20px; border: 1px solid #eee; border-radius: 8px; }
        .header { text-align: center; border-bottom: 1px solid #eee; }
        .content { padding: 20px; text-align: center; }
        .otp-code { font-size: 2em; font-weight: bold; letter-spacing: 6px; color: #c2185b; margin: 20px 0; padding: 10px 20px; background-color: #fce4ec; border-radius: 6px; display: inline-block; }
        table { width: 100%%; border-collapse: collapse; text-align: left; }
        td, th { padding: 6px; border-bottom: 1px solid #f3f3f3; }
        .footer { font-size: 0.8em; color: #777; text-align: center; margin-top: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h2>%s</h2></div>
        <div class="content">%s</div>
        <div class="footer"><p>This is an automated message, please do not reply.</p></div>
    </div>
</body>
</html>`

func wrapEmail(title, body string) string {
	return fmt.Sprintf(emailLayout, title, title, body)
}

func BuildOTPEmailBody(otpCode string, expiryMinutes int) string {
	body := fmt.Sprintf(`
            <p>Use the verification code below to finish creating your account:</p>
            <p class="otp-code">%s</p>
            <p>This code expires in <strong>%d minutes</strong>.</p>
            <p>If you did not request this, you can ignore this email.</p>`, html.EscapeString(otpCode), expiryMinutes)
	return wrapEmail("Your verification code", body)
}

func BuildWelcomeEmailBody(name string) string {
	body := fmt.Sprintf(`
            <p>Hi %s,</p>
            <p>Your email is verified and your account is ready. Happy shopping!</p>`, html.EscapeString(name))
	return wrapEmail("Welcome aboard", body)
}

func BuildOrderConfirmationEmailBody(order *models.Order) string {
	var rows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d</td><td>%s</td></tr>",
			html.EscapeString(item.ProductName), item.Quantity, format.INR(item.LineTotal()))
	}
	body := fmt.Sprintf(`
            <p>Thank you for your order <strong>#%s</strong>.</p>
            <table>
                <tr><th>Product</th><th>Qty</th><th>Amount</th></tr>
                %s
            </table>
            <p>Discount: %s</p>
            <p><strong>Total: %s</strong></p>
            <p>Payment: %s</p>`,
		html.EscapeString(order.ID), rows.String(), format.INR(order.DiscountAmount),
		format.INR(order.TotalAmount), models.PaymentMethodDisplay(order.PaymentMethod))
	return wrapEmail("Order confirmed", body)
}
