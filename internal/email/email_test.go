package email

import (
	"context"
	"testing"

	"github.com/Domenick1991/skyreserva/config"
	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notice() domain.VerificationNotice {
	return domain.VerificationNotice{
		Email:      "ana@example.com",
		UserName:   "Ana <Admin>",
		Code:       "482913",
		OrderIDs:   []int64{7, 9},
		Amount:     decimal.RequireFromString("336"),
		TTLMinutes: 5,
	}
}

func TestRenderVerification(t *testing.T) {
	body, err := RenderVerification(notice())
	require.NoError(t, err)

	assert.Contains(t, body, "482913")
	assert.Contains(t, body, "#7, #9")
	assert.Contains(t, body, "Orders:")
	assert.Contains(t, body, "$336.00")
	assert.Contains(t, body, "valid for 5 minutes")
	assert.Contains(t, body, "Ana &lt;Admin&gt;")
}

func TestSender_DisabledSMTPOnlyLogs(t *testing.T) {
	s, err := NewSender(config.SMTPConfig{}, nil)
	require.NoError(t, err)
	assert.NoError(t, s.NotifyVerificationCode(context.Background(), notice()))
}

func TestSender_BuildMessage(t *testing.T) {
	s := &Sender{from: "noreply@skyreserva.test", fromName: "SkyReserva"}
	msg, err := s.buildMessage(notice())
	require.NoError(t, err)
	to := msg.GetTo()
	require.Len(t, to, 1)
	assert.Equal(t, "ana@example.com", to[0].Address)

	_, err = s.buildMessage(domain.VerificationNotice{Email: "not an address"})
	assert.Error(t, err)
}
