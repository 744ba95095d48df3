// Package mailer renders and delivers transactional email.
package mailer

import (
	"context"
	"errors"
)

// ErrPermanent marks a delivery failure that retrying will not fix, such as
// a rejected recipient.
var ErrPermanent = errors.New("permanent delivery failure")

type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type nopSender struct{}

// NopSender accepts every message without delivering it. Used when SMTP is
// not configured outside production.
func NopSender() Sender {
	return nopSender{}
}

func (nopSender) Send(context.Context, Message) error {
	return nil
}
