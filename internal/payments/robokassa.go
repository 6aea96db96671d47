package payments

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// RobokassaGateway реализует Gateway поверх Robokassa.
type RobokassaGateway struct {
	MerchantLogin string
	Password1     string
	Password2     string
	BaseURL       string
	Currency      string
}

func NewRobokassaGateway(merchantLogin, password1, password2, baseURL, currency string) *RobokassaGateway {
	if baseURL == "" {
		baseURL = "https://auth.robokassa.kz/Merchant/Index.aspx" // или .ru
	}
	if currency == "" {
		currency = "KZT"
	}
	return &RobokassaGateway{
		MerchantLogin: merchantLogin,
		Password1:     password1,
		Password2:     password2,
		BaseURL:       baseURL,
		Currency:      currency,
	}
}

// GeneratePaymentURL создаёт ссылку на оплату.
func (g *RobokassaGateway) GeneratePaymentURL(invoiceID string, amount float64, description, email string) (string, error) {
	signature := g.generateSignature(invoiceID, amount)
	params := url.Values{}

	params.Set("MrchLogin", g.MerchantLogin)
	params.Set("OutSum", fmt.Sprintf("%.2f", amount))
	params.Set("InvId", invoiceID)
	params.Set("Desc", description)
	params.Set("SignatureValue", signature)
	params.Set("Email", email)
	params.Set("IncCurrLabel", g.Currency)
	params.Set("Culture", "ru")

	return fmt.Sprintf("%s?%s", g.BaseURL, params.Encode()), nil
}

// generateSignature формирует MD5-подпись для оплаты.
func (g *RobokassaGateway) generateSignature(invoiceID string, amount float64) string {
	plain := fmt.Sprintf("%s:%.2f:%s:%s", g.MerchantLogin, amount, invoiceID, g.Password1)
	hash := md5.Sum([]byte(plain))
	return strings.ToUpper(hex.EncodeToString(hash[:]))
}

// VerifyResultSignature проверяет подпись от Robokassa (используется при callback'ах).
func (g *RobokassaGateway) VerifyResultSignature(amount float64, invoiceID, receivedSig string) bool {
	expected := fmt.Sprintf("%.2f:%s:%s", amount, invoiceID, g.Password2)
	hash := md5.Sum([]byte(expected))
	expectedSig := strings.ToUpper(hex.EncodeToString(hash[:]))
	return strings.EqualFold(expectedSig, receivedSig)
}
