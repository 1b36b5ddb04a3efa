// internal/app/system/mailer/mailer.go
package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"time"

	"go.uber.org/zap"
)

// Mailer sends notification emails via SMTP. Without SMTP credentials it
// runs simulated: Send logs the message instead of delivering it.
type Mailer struct {
	host     string
	port     int
	user     string
	pass     string
	from     string
	fromName string
	log      *zap.Logger

	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// Config holds the configuration for creating a Mailer.
type Config struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string // defaults to User
	FromName string
}

// New creates a new Mailer with the given configuration.
func New(cfg Config, log *zap.Logger) *Mailer {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &Mailer{
		host:     cfg.Host,
		port:     cfg.Port,
		user:     cfg.User,
		pass:     cfg.Pass,
		from:     from,
		fromName: cfg.FromName,
		log:      log,
		send:     smtp.SendMail,
	}
}

// FromName returns the configured sender display name.
func (m *Mailer) FromName() string {
	return m.fromName
}

// Simulated reports whether emails are logged instead of sent.
func (m *Mailer) Simulated() bool {
	return m.user == "" || m.pass == "" || m.host == ""
}

// Inline is an image embedded in the HTML body, referenced as cid:ContentID.
type Inline struct {
	Filename    string
	ContentID   string
	ContentType string
	Data        []byte
}

// Email represents an email to be sent.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
	Inline   []Inline
}

// Send delivers email. With inline images the message is
// multipart/related wrapping a multipart/alternative body.
func (m *Mailer) Send(email Email) error {
	if m.Simulated() {
		m.log.Info("email simulated",
			zap.String("to", email.To),
			zap.String("subject", email.Subject),
			zap.Int("inline", len(email.Inline)))
		return nil
	}

	msg, err := m.build(email, time.Now())
	if err != nil {
		return fmt.Errorf("build email: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	if err := m.send(addr, auth, m.from, []string{email.To}, msg); err != nil {
		m.log.Error("failed to send email",
			zap.String("to", email.To),
			zap.String("subject", email.Subject),
			zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.log.Info("email sent",
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
		zap.Int("inline", len(email.Inline)))
	return nil
}

func (m *Mailer) build(email Email, now time.Time) ([]byte, error) {
	from := m.from
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", m.fromName), m.from)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", email.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.BEncoding.Encode("utf-8", email.Subject))
	fmt.Fprintf(&msg, "Date: %s\r\n", now.Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")

	if email.HTMLBody == "" {
		msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		msg.WriteString(email.TextBody)
		return msg.Bytes(), nil
	}

	if len(email.Inline) == 0 {
		alt := multipart.NewWriter(&msg)
		fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", alt.Boundary())
		if err := writeParts(alt, email); err != nil {
			return nil, err
		}
		return msg.Bytes(), nil
	}

	related := multipart.NewWriter(&msg)
	fmt.Fprintf(&msg, "Content-Type: multipart/related; boundary=%q\r\n\r\n", related.Boundary())

	var alt bytes.Buffer
	altWriter := multipart.NewWriter(&alt)
	part, err := related.CreatePart(textproto.MIMEHeader{
		"Content-Type": {fmt.Sprintf("multipart/alternative; boundary=%q", altWriter.Boundary())},
	})
	if err != nil {
		return nil, err
	}
	if err := writeParts(altWriter, email); err != nil {
		return nil, err
	}
	if _, err := part.Write(alt.Bytes()); err != nil {
		return nil, err
	}

	for _, in := range email.Inline {
		ct := in.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		p, err := related.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {fmt.Sprintf("%s; name=%q", ct, in.Filename)},
			"Content-Transfer-Encoding": {"base64"},
			"Content-ID":                {"<" + in.ContentID + ">"},
			"Content-Disposition":       {fmt.Sprintf("inline; filename=%q", in.Filename)},
		})
		if err != nil {
			return nil, err
		}
		if err := writeBase64(p, in.Data); err != nil {
			return nil, err
		}
	}
	if err := related.Close(); err != nil {
		return nil, err
	}
	return msg.Bytes(), nil
}

func writeParts(w *multipart.Writer, email Email) error {
	text, err := w.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/plain; charset=UTF-8"}})
	if err != nil {
		return err
	}
	if _, err := text.Write([]byte(email.TextBody)); err != nil {
		return err
	}
	html, err := w.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/html; charset=UTF-8"}})
	if err != nil {
		return err
	}
	if _, err := html.Write([]byte(email.HTMLBody)); err != nil {
		return err
	}
	return w.Close()
}

// writeBase64 writes data base64-encoded in 76-column lines.
func writeBase64(w io.Writer, data []byte) error {
	enc := base64.StdEncoding.EncodeToString(data)
	for len(enc) > 76 {
		if _, err := w.Write([]byte(enc[:76] + "\r\n")); err != nil {
			return err
		}
		enc = enc[76:]
	}
	_, err := w.Write([]byte(enc + "\r\n"))
	return err
}
