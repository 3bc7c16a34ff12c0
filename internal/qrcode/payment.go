package qrcode

import "regexp"

// Payment labels reported by IsPayment.
const (
	PaymentWeChat   = "微信收款码"
	PaymentAlipay   = "支付宝收款码"
	PaymentUnionPay = "云闪付收款码"
	PaymentBank     = "银行收款码"
	PaymentAmount   = "含金额参数的收款码"
	PaymentPlatform = "第三方支付平台"
)

// genericPaymentMaxLen bounds the payloads the keyword-only rule applies to;
// longer texts are articles or links that merely mention payment.
const genericPaymentMaxLen = 150

var paymentRules = []struct {
	label   string
	pattern *regexp.Regexp
}{
	{PaymentWeChat, regexp.MustCompile(`(?i)^(wxp://|https?://payapp\.weixin\.qq\.com/|weixin://)`)},
	{PaymentAlipay, regexp.MustCompile(`(?i)(https?://(qr|mapi)\.alipay\.com/|alipays://platformapi/startapp\?|ALIPAY://|支付宝|alipay)`)},
	{PaymentUnionPay, regexp.MustCompile(`(?i)(unionpay|upapi|uppay|银联|云闪付)`)},
	{PaymentBank, bankPattern},
	{PaymentAmount, regexp.MustCompile(`(amount|money|total_fee)=[\d.]+`)},
}

var (
	paymentKeywords = regexp.MustCompile(`(?i)(pay|付款|shoukuan|收钱|收款|platform|qrcode)`)
	webLink         = regexp.MustCompile(`(?i)http`)
)

// IsPayment reports whether payload looks like a payment code and, if so,
// which kind.
func IsPayment(payload string) (bool, string) {
	for _, rule := range paymentRules {
		if rule.pattern.MatchString(payload) {
			return true, rule.label
		}
	}

	if paymentKeywords.MatchString(payload) &&
		len([]rune(payload)) < genericPaymentMaxLen &&
		!webLink.MatchString(payload) {
		return true, PaymentPlatform
	}
	return false, ""
}
