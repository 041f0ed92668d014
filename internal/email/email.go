package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/Domenick1991/skyreserva/config"
	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFiles embed.FS

var verificationTemplate = template.Must(template.ParseFS(templateFiles, "templates/verification_code.html"))

// Sender delivers verification codes over SMTP. Without an SMTP host it only logs.
type Sender struct {
	client   *mail.Client
	from     string
	fromName string
	log      *zap.Logger
}

func NewSender(cfg config.SMTPConfig, log *zap.Logger) (*Sender, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Sender{from: cfg.From, fromName: cfg.FromName, log: log}
	if !cfg.Enabled() {
		log.Warn("smtp host not configured, verification emails will only be logged")
		return s, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	s.client = client
	return s, nil
}

// NotifyVerificationCode sends the verification email.
func (s *Sender) NotifyVerificationCode(ctx context.Context, notice domain.VerificationNotice) error {
	if s.client == nil {
		s.log.Info("verification email (smtp disabled)",
			zap.String("to", notice.Email),
			zap.Int64s("order_ids", notice.OrderIDs),
			zap.String("amount", notice.Amount.StringFixed(2)),
		)
		return nil
	}

	msg, err := s.buildMessage(notice)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	s.log.Info("verification email sent", zap.String("to", notice.Email), zap.Int64s("order_ids", notice.OrderIDs))
	return nil
}

func (s *Sender) buildMessage(notice domain.VerificationNotice) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(notice.Email); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject("Your SkyReserva verification code")

	body, err := RenderVerification(notice)
	if err != nil {
		return nil, err
	}
	msg.SetBodyString(mail.TypeTextHTML, body)
	msg.AddAlternativeString(mail.TypeTextPlain, fmt.Sprintf(
		"Your verification code is %s. Amount: $%s. Valid for %d minutes.",
		notice.Code, notice.Amount.StringFixed(2), notice.TTLMinutes))
	return msg, nil
}

// RenderVerification renders the HTML body of the verification email.
func RenderVerification(notice domain.VerificationNotice) (string, error) {
	data := struct {
		UserName   string
		Code       string
		OrderIDs   []int64
		Amount     string
		TTLMinutes int
	}{
		UserName:   notice.UserName,
		Code:       notice.Code,
		OrderIDs:   notice.OrderIDs,
		Amount:     notice.Amount.StringFixed(2),
		TTLMinutes: notice.TTLMinutes,
	}
	var buf bytes.Buffer
	if err := verificationTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render verification email: %w", err)
	}
	return buf.String(), nil
}
