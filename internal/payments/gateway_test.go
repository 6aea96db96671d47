package payments

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubGateway_SignatureRoundTrip(t *testing.T) {
	t.Parallel()
	gateway := NewStubGateway("secret", "")

	rawURL, err := gateway.GeneratePaymentURL("inv-1", 250, "Витраж", "buyer@test.local")
	require.NoError(t, err)

	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	// Ссылка ведёт на наш собственный callback-роут.
	assert.Equal(t, "/api/v1/payments/callback", parsed.Path)
	sig := parsed.Query().Get("SignatureValue")
	require.NotEmpty(t, sig)

	assert.True(t, gateway.VerifyResultSignature(250, "inv-1", sig))

	// Другая сумма, другой инвойс или другой секрет подпись не проходят.
	assert.False(t, gateway.VerifyResultSignature(251, "inv-1", sig))
	assert.False(t, gateway.VerifyResultSignature(250, "inv-2", sig))
	assert.False(t, NewStubGateway("other", "").VerifyResultSignature(250, "inv-1", sig))
}

func TestRobokassaGateway_PaymentURL(t *testing.T) {
	t.Parallel()
	gateway := NewRobokassaGateway("shop", "pass1", "pass2", "", "KZT")

	rawURL, err := gateway.GeneratePaymentURL("42", 99.9, "Заказ", "buyer@test.local")
	require.NoError(t, err)

	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	q := parsed.Query()
	assert.Equal(t, "shop", q.Get("MrchLogin"))
	assert.Equal(t, "99.90", q.Get("OutSum"))
	assert.Equal(t, "42", q.Get("InvId"))
	assert.NotEmpty(t, q.Get("SignatureValue"))
}

func TestRobokassaGateway_ResultSignature(t *testing.T) {
	t.Parallel()
	gateway := NewRobokassaGateway("shop", "pass1", "pass2", "", "")

	// MD5("100.00:42:pass2") в верхнем регистре.
	assert.True(t, gateway.VerifyResultSignature(100, "42", "025E86D7C4B13C99E3A030CB9744804A"))
	assert.False(t, gateway.VerifyResultSignature(100, "42", "0000"))
}
