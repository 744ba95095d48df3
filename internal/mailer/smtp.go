package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/google/uuid"

	"invoicely.app/api/core/config"
)

type SMTPSender struct {
	cfg config.SMTPConfig
	now func() time.Time
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg, now: time.Now}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("%w: no recipients", ErrPermanent)
	}

	from, err := mail.ParseAddress(s.cfg.From)
	if err != nil {
		return fmt.Errorf("%w: invalid from address: %v", ErrPermanent, err)
	}

	body, err := s.encode(from, msg)
	if err != nil {
		return fmt.Errorf("%w: encoding message: %v", ErrPermanent, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	c, err := smtp.Dial(s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", s.cfg.Addr(), err)
	}
	defer func() {
		if err := c.Quit(); err != nil {
			slog.WarnContext(ctx, "failed to close SMTP connection", "error", err)
		}
	}()

	if deadline, ok := ctx.Deadline(); ok {
		c.CommandTimeout = time.Until(deadline)
		c.SubmissionTimeout = time.Until(deadline)
	}

	if err := c.Hello(s.cfg.Hello); err != nil {
		return fmt.Errorf("server handshake: %w", err)
	}

	if s.cfg.Username != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(sasl.NewPlainClient("", s.cfg.Username, s.cfg.Password)); err != nil {
				return classify(fmt.Errorf("plain auth: %w", err))
			}
		}
	}

	if err := c.SendMail(from.Address, msg.To, bytes.NewReader(body)); err != nil {
		return classify(fmt.Errorf("sending mail: %w", err))
	}

	slog.DebugContext(ctx, "email delivered via SMTP", "recipients", len(msg.To), "subject", msg.Subject)
	return nil
}

// encode builds a multipart/alternative message with the HTML part last so
// clients prefer it.
func (s *SMTPSender) encode(from *mail.Address, msg Message) ([]byte, error) {
	var head, parts bytes.Buffer
	mw := multipart.NewWriter(&parts)

	_, _ = fmt.Fprintf(&head, "From: %s\r\n", from.String())
	_, _ = fmt.Fprintf(&head, "To: %s\r\n", strings.Join(msg.To, ", "))
	_, _ = fmt.Fprintf(&head, "Subject: %s\r\n", msg.Subject)
	_, _ = fmt.Fprintf(&head, "Message-Id: <%s@%s>\r\n", uuid.NewString(), s.cfg.Hello)
	_, _ = fmt.Fprintf(&head, "Date: %s\r\n", s.now().Format(time.RFC1123Z))
	_, _ = fmt.Fprintf(&head, "Content-Type: multipart/alternative; boundary=%s\r\n", mw.Boundary())
	_, _ = fmt.Fprintf(&head, "MIME-Version: 1.0\r\n\r\n")

	for _, part := range []struct{ contentType, body string }{
		{"text/plain; charset=UTF-8", msg.Text},
		{"text/html; charset=UTF-8", msg.HTML},
	} {
		if part.body == "" {
			continue
		}
		w, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Transfer-Encoding": {"quoted-printable"},
			"Content-Type":              {part.contentType},
		})
		if err != nil {
			return nil, err
		}
		qw := quotedprintable.NewWriter(w)
		if _, err := qw.Write([]byte(part.body)); err != nil {
			return nil, err
		}
		if err := qw.Close(); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	head.Write(parts.Bytes())
	return head.Bytes(), nil
}

// classify wraps 5xx replies in ErrPermanent. Anything else, including
// network errors and 4xx replies, is treated as transient.
func classify(err error) error {
	var smtpErr *smtp.SMTPError
	if errors.As(err, &smtpErr) && smtpErr.Code >= 500 {
		return fmt.Errorf("%w: %w", ErrPermanent, err)
	}
	return err
}
