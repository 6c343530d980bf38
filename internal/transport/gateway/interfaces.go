package gateway

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import "context"

// Sender доставляет текстовое сообщение на адрес (номер телефона) через шлюз сообщений.
type Sender interface {
	Send(ctx context.Context, to string, body string) error
}
