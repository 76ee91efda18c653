package sms

import "context"

// Sender dispatches a text message to a destination phone number.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}
