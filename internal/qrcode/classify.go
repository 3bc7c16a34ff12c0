package qrcode

import (
	"regexp"
	"strings"

	"github.com/ironsheep/image-recognize/internal/model"
)

type prefixRule struct {
	code     model.QRCodeType
	prefixes []string
}

// prefixTable is matched top to bottom. A row must precede any broader row
// whose prefixes it extends.
var prefixTable = []prefixRule{
	{model.QRWeChatPay, []string{"wxp://", "https://payapp.weixin.qq.com/", "weixin://wxpay/"}},
	{model.QRWeChatLogin, []string{"https://weixin.qq.com/w", "https://open.weixin.qq.com/"}},
	{model.QRWeChatMini, []string{"wxaapp://", "https://wxaurl.cn/"}},
	{model.QRAlipayMini, []string{"alipays://platformapi/startapp?appId="}},
	{model.QRAlipay, []string{"https://qr.alipay.com/", "alipays://platformapi/startapp", "https://mapi.alipay.com/"}},
	{model.QRUnionPay, []string{"unionpay://", "upapi://", "uppay://"}},
	{model.QRBankPay, []string{"icbc://", "ccb://", "abc://", "boc://", "cmb://"}},
	{model.QRWeChat, []string{"weixin://"}},
	{model.QRDouyin, []string{"snssdk1128://", "aweme://"}},
	{model.QRTaobao, []string{"taobao://", "tbopen://"}},
	{model.QRJD, []string{"openapp.jdmobile://", "jdmobile://"}},
	{model.QRMeituan, []string{"meituanwaimai://", "imeituan://"}},
	{model.QRDidi, []string{"diditaxi://"}},
	{model.QRWiFi, []string{"WIFI:"}},
	{model.QRVCard, []string{"BEGIN:VCARD", "MECARD:"}},
	{model.QRTel, []string{"tel:"}},
	{model.QRSMS, []string{"sms:"}},
	{model.QREmail, []string{"mailto:"}},
	{model.QRCalendar, []string{"BEGIN:VCALENDAR"}},
	{model.QRGeo, []string{"geo:"}},
	{model.QRURL, []string{"http://", "https://"}},
}

type keywordRule struct {
	code    model.QRCodeType
	match   *regexp.Regexp
	exclude *regexp.Regexp
}

var keywordRules = []keywordRule{
	{code: model.QRWeChatPay, match: regexp.MustCompile(`(?i)(微信支付|wxpay)`)},
	{code: model.QRAlipay, match: regexp.MustCompile(`(?i)(支付宝|alipay)`)},
	{code: model.QRUnionPay, match: regexp.MustCompile(`(?i)(银联|云闪付|unionpay)`)},
	{code: model.QRBankPay, match: bankPattern},
	{code: model.QRWeChat, match: regexp.MustCompile(`(?i)(微信|weixin)`), exclude: regexp.MustCompile(`(?i)(支付|pay)`)},
	{code: model.QRDouyin, match: regexp.MustCompile(`(?i)(抖音|douyin|tiktok)`)},
	{code: model.QRTaobao, match: regexp.MustCompile(`(?i)(淘宝|taobao)`)},
	{code: model.QRJD, match: regexp.MustCompile(`(?i)(京东|jd\.com)`)},
	{code: model.QRMeituan, match: regexp.MustCompile(`(?i)(美团|meituan)`)},
	{code: model.QRDidi, match: regexp.MustCompile(`(?i)(滴滴|didi)`)},
	{code: model.QRURL, match: regexp.MustCompile(`(?i)^https?://`)},
}

// bankPattern names Chinese banks, their app schemes and online banking terms.
var bankPattern = regexp.MustCompile(`(?i)(icbc|ccb|abc|boc|cmb|bankcard|网银|手机银行|转账)`)

// Classify returns the type of a decoded payload and its display name. An
// empty payload is UNKNOWN.
func Classify(payload string) (model.QRCodeType, string) {
	code := classify(payload)
	return code, code.DisplayName()
}

func classify(payload string) model.QRCodeType {
	if payload == "" {
		return model.QRUnknown
	}

	lower := strings.ToLower(payload)
	for _, rule := range prefixTable {
		for _, prefix := range rule.prefixes {
			if strings.HasPrefix(lower, strings.ToLower(prefix)) {
				return rule.code
			}
		}
	}

	for _, rule := range keywordRules {
		if !rule.match.MatchString(payload) {
			continue
		}
		if rule.exclude != nil && rule.exclude.MatchString(payload) {
			continue
		}
		return rule.code
	}
	return model.QRText
}

// Describe classifies payload and checks it for payment intent.
func Describe(payload string) model.QRCodeInfo {
	code, name := Classify(payload)
	isPayment, paymentType := IsPayment(payload)
	return model.QRCodeInfo{
		Content:     payload,
		Code:        code,
		Name:        name,
		IsPayment:   isPayment,
		PaymentType: paymentType,
	}
}

// PayloadText converts a raw payload to a string, dropping invalid UTF-8.
func PayloadText(raw []byte) string {
	return strings.ToValidUTF8(string(raw), "")
}
