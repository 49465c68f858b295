package main

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"os/signal"
	"syscall"

	"fintrack/internal/config"
	"fintrack/internal/logger"
	"fintrack/internal/notify"
)

func main() {
	log := logger.NewLogger("mail-worker")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	mailQueue, err := notify.NewClient(cfg.Queue, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to mail queue")
	}
	defer mailQueue.Close()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	err = mailQueue.ConsumeMail(ctx, func(msg *notify.MailMessage) error {
		return sendMail(cfg.Mail, msg)
	})
	if err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("mail consumption stopped unexpectedly")
	}

	log.Info().Msg("mail worker shut down gracefully")
}

// sendMail delivers one queued message over SMTP. PLAIN auth is used only
// when a username is configured, so a local relay without auth still works.
func sendMail(cfg config.Mail, msg *notify.MailMessage) error {
	var auth smtp.Auth
	if cfg.Username != "" {
		host, _, err := net.SplitHostPort(cfg.SMTPAddress)
		if err != nil {
			return fmt.Errorf("invalid SMTP address: %w", err)
		}
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, host)
	}

	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		cfg.Sender, msg.To, msg.Subject, msg.Body)

	return smtp.SendMail(cfg.SMTPAddress, auth, cfg.Sender, []string{msg.To}, []byte(body))
}
