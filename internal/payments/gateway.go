package payments

// Gateway - платежный шлюз. Генерирует ссылку на оплату заказа и проверяет
// подпись callback'а об оплате.
type Gateway interface {
	// GeneratePaymentURL создаёт ссылку на страницу оплаты.
	GeneratePaymentURL(invoiceID string, amount float64, description, email string) (string, error)

	// VerifyResultSignature проверяет подпись из callback'а шлюза.
	VerifyResultSignature(amount float64, invoiceID, receivedSig string) bool
}
