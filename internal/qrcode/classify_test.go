package qrcode

import (
	"testing"

	"github.com/ironsheep/image-recognize/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		payload string
		want    model.QRCodeType
	}{
		{"wxp://f2f0abcdef", model.QRWeChatPay},
		{"https://payapp.weixin.qq.com/qr/abc", model.QRWeChatPay},
		{"weixin://wxpay/bizpayurl?pr=abc", model.QRWeChatPay},
		{"https://open.weixin.qq.com/connect/qrconnect", model.QRWeChatLogin},
		{"https://wxaurl.cn/abc", model.QRWeChatMini},
		{"alipays://platformapi/startapp?appId=2021", model.QRAlipayMini},
		{"alipays://platformapi/startapp?saId=10000007", model.QRAlipay},
		{"HTTPS://QR.ALIPAY.COM/FKX12345", model.QRAlipay},
		{"upapi://pay?id=1", model.QRUnionPay},
		{"icbc://pay", model.QRBankPay},
		{"weixin://dl/business", model.QRWeChat},
		{"snssdk1128://user/profile", model.QRDouyin},
		{"tbopen://m.taobao.com", model.QRTaobao},
		{"openapp.jdmobile://virtual", model.QRJD},
		{"imeituan://www.meituan.com", model.QRMeituan},
		{"diditaxi://", model.QRDidi},
		{"WIFI:S:home;T:WPA;P:secret;;", model.QRWiFi},
		{"BEGIN:VCARD\nFN:Zhang San\nEND:VCARD", model.QRVCard},
		{"MECARD:N:Zhang;TEL:10086;;", model.QRVCard},
		{"tel:10086", model.QRTel},
		{"sms:10086", model.QRSMS},
		{"mailto:someone@example.com", model.QREmail},
		{"BEGIN:VCALENDAR\nEND:VCALENDAR", model.QRCalendar},
		{"geo:39.9,116.4", model.QRGeo},
		{"https://example.com/landing", model.QRURL},
		{"扫码使用微信支付", model.QRWeChatPay},
		{"请用支付宝扫一扫", model.QRAlipay},
		{"云闪付扫码", model.QRUnionPay},
		{"手机银行扫一扫", model.QRBankPay},
		{"关注微信公众号", model.QRWeChat},
		{"微信付款 pay", model.QRText},
		{"来抖音看看", model.QRDouyin},
		{"淘宝好物", model.QRTaobao},
		{"京东 jd.com", model.QRJD},
		{"美团外卖", model.QRMeituan},
		{"滴滴出行", model.QRDidi},
		{"hello world", model.QRText},
		{"", model.QRUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			got, name := Classify(tt.payload)
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
			if name != tt.want.DisplayName() {
				t.Errorf("name: got %s, want %s", name, tt.want.DisplayName())
			}
		})
	}
}

func TestPrefixTableOrder(t *testing.T) {
	index := make(map[model.QRCodeType]int, len(prefixTable))
	for i, rule := range prefixTable {
		index[rule.code] = i
	}

	before := [][2]model.QRCodeType{
		{model.QRAlipayMini, model.QRAlipay},
		{model.QRWeChatPay, model.QRWeChat},
		{model.QRWeChatLogin, model.QRURL},
		{model.QRAlipay, model.QRURL},
	}
	for _, pair := range before {
		if index[pair[0]] >= index[pair[1]] {
			t.Errorf("%s must precede %s", pair[0], pair[1])
		}
	}
}

func TestDescribe(t *testing.T) {
	info := Describe("wxp://f2f0abcdef")
	if info.Code != model.QRWeChatPay || info.Name != "微信支付" {
		t.Errorf("classification: got %+v", info)
	}
	if !info.IsPayment || info.PaymentType != PaymentWeChat {
		t.Errorf("payment: got %+v", info)
	}
	if info.Content != "wxp://f2f0abcdef" {
		t.Errorf("content: got %q", info.Content)
	}
}

func TestPayloadText(t *testing.T) {
	raw := append([]byte("付款码"), 0xff, 0xfe)
	if got := PayloadText(raw); got != "付款码" {
		t.Errorf("got %q", got)
	}
}
