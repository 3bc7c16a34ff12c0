package qrcode

import (
	"strings"
	"testing"
)

func TestIsPayment(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		want      bool
		wantLabel string
	}{
		{"wechat scheme", "wxp://f2f0abcdef", true, PaymentWeChat},
		{"wechat host", "HTTPS://payapp.weixin.qq.com/x", true, PaymentWeChat},
		{"alipay host", "https://qr.alipay.com/fkx12345", true, PaymentAlipay},
		{"alipay keyword", "支付宝转账", true, PaymentAlipay},
		{"unionpay", "upapi://pay?id=1", true, PaymentUnionPay},
		{"bank keyword", "转账给张三", true, PaymentBank},
		{"amount parameter", "order?amount=12.50", true, PaymentAmount},
		{"amount is case-sensitive", "order?AMOUNT=12.50", false, ""},
		{"generic keyword", "shoukuan:12345", true, PaymentPlatform},
		{"generic keyword in link", "https://example.com/pay", false, ""},
		{"generic keyword too long", strings.Repeat("pay", 60), false, ""},
		{"plain text", "hello", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, label := IsPayment(tt.payload)
			if got != tt.want || label != tt.wantLabel {
				t.Errorf("got (%v, %q), want (%v, %q)", got, label, tt.want, tt.wantLabel)
			}
		})
	}
}
