package email

import (
	"crypto/tls"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/wneessen/go-mail"
)

// Client representa el cliente de correo electrónico
type Client struct {
	host      string
	port      int
	user      string
	password  string
	fromName  string
	fromEmail string
}

// NewClient crea una nueva instancia del cliente de email
func NewClient(host, portStr, user, password, fromName, fromEmail string) (*Client, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("puerto SMTP inválido: %w", err)
	}

	return &Client{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}, nil
}

// SendEmail envía un correo electrónico
func (c *Client) SendEmail(to, subject, htmlBody string) error {
	// Crear mensaje
	m := mail.NewMsg()

	// Configurar remitente
	if err := m.From(fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)); err != nil {
		return fmt.Errorf("error al configurar remitente: %w", err)
	}

	// Configurar destinatario
	if err := m.To(to); err != nil {
		return fmt.Errorf("error al configurar destinatario: %w", err)
	}

	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody)

	// Crear cliente SMTP
	log.Printf("SMTP: connecting to %s:%d as user=%s", c.host, c.port, c.user)

	client, err := mail.NewClient(c.host,
		mail.WithPort(c.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.user),
		mail.WithPassword(c.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{
			ServerName: c.host,
		}),
	)
	if err != nil {
		return fmt.Errorf("error al crear cliente SMTP (host=%s port=%d user=%s): %w", c.host, c.port, c.user, err)
	}

	// Enviar correo
	if err := client.DialAndSend(m); err != nil {
		// Añadir contexto útil al error sin exponer credenciales
		return fmt.Errorf("error al enviar correo (host=%s port=%d user=%s): %w", c.host, c.port, c.user, err)
	}

	return nil
}

// SendComplianceFailure notifica al responsable de cumplimiento que un envío
// a SIRE falló y requiere revisión manual. El detalle del error del portal se
// incluye textual, tal como fue almacenado.
func (c *Client) SendComplianceFailure(to, reservationID, submissionID, errorDetail string) error {
	subject := fmt.Sprintf("Fallo de envío SIRE - Reserva %s", reservationID)
	htmlBody := generarHTMLFalloEnvio(reservationID, submissionID, errorDetail)

	return c.SendEmail(to, subject, htmlBody)
}

// generarHTMLFalloEnvio genera el HTML del correo de fallo de envío
func generarHTMLFalloEnvio(reservationID, submissionID, errorDetail string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="es">
<head>
	<meta charset="UTF-8">
	<title>Fallo de Envío SIRE</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f4f4f4;">
	<table width="100%%" cellpadding="0" cellspacing="0" style="background-color: #f4f4f4; padding: 20px;">
		<tr>
			<td align="center">
				<table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 8px; overflow: hidden;">
					<tr>
						<td style="background-color: #dc3545; padding: 30px 20px; text-align: center;">
							<h1 style="color: #ffffff; margin: 0; font-size: 24px;">Fallo de Envío SIRE</h1>
						</td>
					</tr>
					<tr>
						<td style="padding: 30px;">
							<p style="color: #333;">El envío automático al portal SIRE falló y requiere revisión manual.</p>
							<div style="background-color: #f8f9fa; border-left: 4px solid #dc3545; padding: 20px; margin: 20px 0;">
								<table width="100%%" cellpadding="0" cellspacing="0">
									<tr>
										<td style="padding: 8px 0;"><strong>Reserva:</strong></td>
										<td style="padding: 8px 0; text-align: right;">%s</td>
									</tr>
									<tr>
										<td style="padding: 8px 0;"><strong>Envío:</strong></td>
										<td style="padding: 8px 0; text-align: right;">%s</td>
									</tr>
									<tr>
										<td style="padding: 8px 0;"><strong>Fecha:</strong></td>
										<td style="padding: 8px 0; text-align: right;">%s</td>
									</tr>
								</table>
							</div>
							<h3 style="color: #333;">Error reportado por el portal</h3>
							<pre style="background-color: #f8f9fa; padding: 15px; border-radius: 5px; white-space: pre-wrap; color: #721c24;">%s</pre>
							<p style="color: #666;">Los datos recolectados quedaron intactos: corrija lo necesario y reintente el envío desde el panel de cumplimiento.</p>
						</td>
					</tr>
					<tr>
						<td style="background-color: #f8f9fa; padding: 20px; text-align: center; border-top: 1px solid #e0e0e0;">
							<p style="margin: 0; color: #999; font-size: 12px;">Este es un correo automático, por favor no responder directamente</p>
						</td>
					</tr>
				</table>
			</td>
		</tr>
	</table>
</body>
</html>
	`,
		reservationID,
		submissionID,
		time.Now().Format("02/01/2006 15:04"),
		errorDetail,
	)
}
