package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"billing-habit/pkg/utils"

	"go.uber.org/zap"
)

// OTPSender delivers a login code for a phone number.
type OTPSender interface {
	SendOTP(ctx context.Context, number, code string, expiresAt time.Time) error
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender mails every code to a single operator inbox, which relays it to the user.
type SMTPSender struct {
	addr     string
	host     string
	user     string
	password string
	from     string
	to       string
	send     sendMailFunc
	log      *zap.Logger
}

func NewSMTPSender(cfg utils.EmailConfig, log *zap.Logger) *SMTPSender {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &SMTPSender{
		addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		host:     cfg.Host,
		user:     cfg.User,
		password: cfg.Password,
		from:     from,
		to:       cfg.OTPTo,
		send:     smtp.SendMail,
		log:      log.With(zap.String("component", "mailer")),
	}
}

func (s *SMTPSender) SendOTP(ctx context.Context, number, code string, expiresAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.password, s.host)
	}

	msg := buildOTPMessage(s.from, s.to, number, code, expiresAt)
	if err := s.send(s.addr, auth, s.from, []string{s.to}, msg); err != nil {
		s.log.Error("Failed to send OTP email", zap.Error(err), zap.String("number", number))
		return fmt.Errorf("send otp email: %w", err)
	}

	s.log.Info("OTP email sent", zap.String("number", number), zap.String("to", s.to))
	return nil
}

// LogSender writes the code to the debug log. Used when SMTP is not configured.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log.With(zap.String("component", "mailer"))}
}

func (s *LogSender) SendOTP(_ context.Context, number, code string, expiresAt time.Time) error {
	s.log.Debug("OTP generated",
		zap.String("number", number),
		zap.String("otp", code),
		zap.Time("expires_at", expiresAt),
	)
	return nil
}

// New picks SMTP delivery when configured, otherwise logging.
func New(cfg utils.EmailConfig, log *zap.Logger) OTPSender {
	if cfg.Enabled() {
		return NewSMTPSender(cfg, log)
	}
	log.Warn("SMTP not configured, OTP codes will only be logged at debug level")
	return NewLogSender(log)
}

func buildOTPMessage(from, to, number, code string, expiresAt time.Time) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: OTP for " + number + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString("Login code for " + number + ": " + code + "\r\n")
	b.WriteString("Valid until " + expiresAt.UTC().Format(time.RFC1123) + ".\r\n")
	return []byte(b.String())
}
