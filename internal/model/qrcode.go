package model

// QRCodeType identifies the platform or payload format behind a decoded QR code.
type QRCodeType string

const (
	QRWeChatPay   QRCodeType = "WX_PAY"
	QRWeChatLogin QRCodeType = "WX_LOGIN"
	QRWeChatMini  QRCodeType = "WX_MINI"
	QRAlipay      QRCodeType = "ALIPAY"
	QRAlipayMini  QRCodeType = "ALIPAY_MINI"
	QRUnionPay    QRCodeType = "UNION_PAY"
	QRBankPay     QRCodeType = "BANK_PAY"
	QRWeChat      QRCodeType = "WEIXIN"
	QRDouyin      QRCodeType = "DOUYIN"
	QRTaobao      QRCodeType = "TAOBAO"
	QRJD          QRCodeType = "JD"
	QRMeituan     QRCodeType = "MEITUAN"
	QRDidi        QRCodeType = "DIDI"
	QRWiFi        QRCodeType = "WIFI"
	QRVCard       QRCodeType = "VCARD"
	QRTel         QRCodeType = "TEL"
	QRSMS         QRCodeType = "SMS"
	QREmail       QRCodeType = "EMAIL"
	QRCalendar    QRCodeType = "CALENDAR"
	QRGeo         QRCodeType = "GEO"
	QRURL         QRCodeType = "URL"
	QRText        QRCodeType = "TEXT"
	QRUnknown     QRCodeType = "UNKNOWN"
)

var qrCodeTypeNames = map[QRCodeType]string{
	QRWeChatPay:   "微信支付",
	QRWeChatLogin: "微信登录",
	QRWeChatMini:  "微信小程序",
	QRAlipay:      "支付宝支付",
	QRAlipayMini:  "支付宝小程序",
	QRUnionPay:    "云闪付",
	QRBankPay:     "银行支付",
	QRWeChat:      "微信",
	QRDouyin:      "抖音",
	QRTaobao:      "淘宝",
	QRJD:          "京东",
	QRMeituan:     "美团",
	QRDidi:        "滴滴",
	QRWiFi:        "WIFI",
	QRVCard:       "名片",
	QRTel:         "电话",
	QRSMS:         "短信",
	QREmail:       "邮件",
	QRCalendar:    "日历",
	QRGeo:         "地理位置",
	QRURL:         "网址",
	QRText:        "文本",
	QRUnknown:     "未知",
}

// DisplayName returns the user-facing name of t.
func (t QRCodeType) DisplayName() string {
	if name, ok := qrCodeTypeNames[t]; ok {
		return name
	}
	return qrCodeTypeNames[QRUnknown]
}
