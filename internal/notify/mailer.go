package notify

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"blogCPT/internal/config"
)

// Mailer отправляет приветственное письмо. Отказ доставки не должен влиять
// на результат регистрации, вызывающий код только логирует ошибку.
type Mailer interface {
	SendWelcome(ctx context.Context, email, username string) error
}

type smtpMailer struct {
	client *gomail.Client
	from   string
}

// NewMailer возвращает заглушку, если SMTP не настроен.
func NewMailer(cfg *config.Config) (Mailer, error) {
	if cfg.SMTP.Host == "" {
		return &noopMailer{}, nil
	}

	client, err := gomail.NewClient(cfg.SMTP.Host,
		gomail.WithPort(cfg.SMTP.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.SMTP.Username),
		gomail.WithPassword(cfg.SMTP.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации SMTP клиента: %w", err)
	}

	return &smtpMailer{client: client, from: cfg.SMTP.From}, nil
}

func (m *smtpMailer) SendWelcome(ctx context.Context, email, username string) error {
	msg := gomail.NewMsg()

	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("ошибка при установке отправителя: %w", err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("ошибка при установке получателя: %w", err)
	}

	msg.Subject("Добро пожаловать в блог")
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Привет, %s!\n\nВаш аккаунт создан. Приятного чтения.\n", username))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("ошибка при отправке письма: %w", err)
	}

	return nil
}

type noopMailer struct{}

func (n *noopMailer) SendWelcome(ctx context.Context, email, username string) error {
	return nil
}
