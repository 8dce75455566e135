package mail

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"net/smtp"
	"strconv"
	"strings"
)

var (
	// ErrSMTPHostPortRequired is returned when Host/Port are missing.
	ErrSMTPHostPortRequired = errors.New("mail: smtp host and port are required")
	// ErrNoRecipients is returned when To is empty.
	ErrNoRecipients = errors.New("mail: no recipients provided")
	// ErrNoSender is returned when neither the message nor the config names a sender.
	ErrNoSender = errors.New("mail: no sender provided")
)

// SMTPConfig configures the SMTP implementation.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the default sender.
	From string
}

// SMTP is a Mail implementation backed by net/smtp.
type SMTP struct {
	addr string
	from string
	auth smtp.Auth
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTP constructs an SMTP mail sender.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrSMTPHostPortRequired
	}

	s := &SMTP{
		addr: cfg.Host + ":" + strconv.Itoa(cfg.Port),
		from: cfg.From,
		send: smtp.SendMail,
	}
	if cfg.Username != "" && cfg.Password != "" {
		s.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return s, nil
}

// Send delivers msg.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}

	from := msg.From
	if from == "" {
		from = s.from
	}
	if from == "" {
		return ErrNoSender
	}

	return s.send(s.addr, s.auth, from, msg.To, compose(from, msg, boundary()))
}

// Close implements io.Closer.
func (s *SMTP) Close() error {
	return nil
}

func compose(from string, msg Message, bnd string) []byte {
	var sb strings.Builder

	fmt.Fprintf(&sb, "From: %s\r\n", from)
	fmt.Fprintf(&sb, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&sb, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	sb.WriteString("MIME-Version: 1.0\r\n")

	switch {
	case msg.HTMLBody != "" && msg.TextBody != "":
		fmt.Fprintf(&sb, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", bnd)
		writePart(&sb, bnd, "text/plain", msg.TextBody)
		writePart(&sb, bnd, "text/html", msg.HTMLBody)
		fmt.Fprintf(&sb, "--%s--\r\n", bnd)
	case msg.HTMLBody != "":
		sb.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		sb.WriteString(msg.HTMLBody)
	default:
		sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		sb.WriteString(msg.TextBody)
	}

	return []byte(sb.String())
}

func writePart(sb *strings.Builder, bnd, contentType, body string) {
	fmt.Fprintf(sb, "--%s\r\n", bnd)
	fmt.Fprintf(sb, "Content-Type: %s; charset=UTF-8\r\n\r\n", contentType)
	sb.WriteString(body)
	sb.WriteString("\r\n")
}

func boundary() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return "bookstore-" + hex.EncodeToString(b[:])
}
