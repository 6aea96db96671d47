package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
)

// StubGateway - детерминированный шлюз для dev-окружения и тестов. Не ходит
// наружу: подпись считается локально, а "страница оплаты" это URL на наш же
// callback с уже готовой валидной подписью.
type StubGateway struct {
	Secret  string
	BaseURL string
}

func NewStubGateway(secret, baseURL string) *StubGateway {
	if baseURL == "" {
		baseURL = "http://localhost:8080/api/v1/payments/callback"
	}
	return &StubGateway{Secret: secret, BaseURL: baseURL}
}

func (g *StubGateway) GeneratePaymentURL(invoiceID string, amount float64, description, email string) (string, error) {
	params := url.Values{}
	params.Set("InvId", invoiceID)
	params.Set("OutSum", fmt.Sprintf("%.2f", amount))
	params.Set("SignatureValue", g.sign(invoiceID, amount))
	return fmt.Sprintf("%s?%s", g.BaseURL, params.Encode()), nil
}

func (g *StubGateway) VerifyResultSignature(amount float64, invoiceID, receivedSig string) bool {
	return hmac.Equal([]byte(g.sign(invoiceID, amount)), []byte(receivedSig))
}

func (g *StubGateway) sign(invoiceID string, amount float64) string {
	mac := hmac.New(sha256.New, []byte(g.Secret))
	fmt.Fprintf(mac, "%s:%.2f", invoiceID, amount)
	return hex.EncodeToString(mac.Sum(nil))
}
