package detection

import (
	"testing"

	"github.com/ironsheep/image-recognize/internal/model"
	"github.com/ironsheep/image-recognize/internal/ocr"
)

// textOf builds Text from lines laid out top to bottom in the given order.
func textOf(lines ...string) Text {
	out := make([]ocr.Line, len(lines))
	for i, l := range lines {
		out[i] = ocr.Line{
			Text:       l,
			Confidence: 0.9,
			Bounds:     ocr.Bounds{X1: 10, Y1: i * 40, X2: 300, Y2: i*40 + 30},
		}
	}
	return NewText(out)
}

func TestNewTextNormalizes(t *testing.T) {
	lines := []ocr.Line{
		{Text: "BANK Card", Bounds: ocr.Bounds{Y1: 100, Y2: 120}},
		{Text: "姓 名 张 三", Bounds: ocr.Bounds{Y1: 0, Y2: 20}},
	}
	text := NewText(lines)

	if text.joined != "bankcard 姓名张三" {
		t.Errorf("joined: got %q", text.joined)
	}
	if text.ordered != "姓名张三 bankcard" {
		t.Errorf("ordered: got %q", text.ordered)
	}
	if text.raw != "BANK Card 姓 名 张 三" {
		t.Errorf("raw: got %q", text.raw)
	}
	if text.Empty() {
		t.Error("text should not be empty")
	}
	if !NewText(nil).Empty() {
		t.Error("no lines should give empty text")
	}
}

func TestIDCard(t *testing.T) {
	tests := []struct {
		name string
		text Text
		want Verdict
	}{
		{
			name: "front with id number",
			text: textOf("姓名 张三", "性别 男 民族 汉", "出生 1990年1月1日", "住址 北京市朝阳区", "公民身份号码 110105199001011234"),
			want: Verdict{Detected: true, Side: model.SideFront},
		},
		{
			name: "front with title and three keywords",
			text: textOf("居民身份证", "姓名 李四", "性别 女", "住址 上海市"),
			want: Verdict{Detected: true, Side: model.SideFront},
		},
		{
			name: "front keywords out of order",
			text: textOf("住址 北京市", "姓名 张三", "性别 男"),
			want: NotDetected,
		},
		{
			name: "back",
			text: textOf("中华人民共和国", "居民身份证", "签发机关 北京市公安局", "有效期限 2010.01.01-2030.01.01"),
			want: Verdict{Detected: true, Side: model.SideBack},
		},
		{
			name: "title and number label only",
			text: textOf("居民身份证", "公民身份号码"),
			want: Verdict{Detected: true, Side: model.SideFront},
		},
		{
			name: "driver's license excluded",
			text: textOf("中华人民共和国机动车驾驶证", "姓名 张三", "性别 男", "住址 北京市", "出生日期 1990-01-01"),
			want: NotDetected,
		},
		{
			name: "unrelated",
			text: textOf("今日菜单", "红烧肉"),
			want: NotDetected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IDCard(tt.text); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDriverLicense(t *testing.T) {
	tests := []struct {
		name string
		text Text
		want Verdict
	}{
		{
			name: "front",
			text: textOf("中华人民共和国机动车驾驶证", "姓名 张三 性别 男 国籍 中国", "住址 北京市", "出生日期 1990-01-01", "初次领证日期 2010-01-01", "准驾车型 C1"),
			want: Verdict{Detected: true, Side: model.SideFront},
		},
		{
			name: "back",
			text: textOf("中华人民共和国机动车驾驶证副页", "档案编号 110100", "有效期限 2030-01-01"),
			want: Verdict{Detected: true, Side: model.SideBack},
		},
		{
			name: "title only",
			text: textOf("驾驶证"),
			want: Verdict{Detected: true, Side: model.SideUnknown},
		},
		{
			name: "front keywords out of order fall back to counts",
			text: textOf("驾驶证", "准驾车型 C1", "住址 北京市", "姓名 张三"),
			want: Verdict{Detected: true, Side: model.SideFront},
		},
		{
			name: "driver without license title",
			text: textOf("驾驶员"),
			want: NotDetected,
		},
		{
			name: "id card",
			text: textOf("居民身份证", "姓名 张三", "公民身份号码 110105199001011234"),
			want: NotDetected,
		},
		{
			name: "no title",
			text: textOf("姓名 张三", "性别 男", "国籍 中国"),
			want: NotDetected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DriverLicense(tt.text); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestVehicleLicense(t *testing.T) {
	tests := []struct {
		name string
		text Text
		want Verdict
	}{
		{
			name: "front",
			text: textOf("中华人民共和国机动车行驶证", "号牌号码 京A12345 车辆类型 小型轿车", "所有人 张三", "住址 北京市", "使用性质 非营运 品牌型号 大众", "注册日期 2020-01-01 发证日期 2020-01-02"),
			want: Verdict{Detected: true, Side: model.SideFront},
		},
		{
			name: "back",
			text: textOf("核定载人 5人", "总质量 1500kg", "整备质量 1200kg", "检验记录 合格"),
			want: Verdict{Detected: true, Side: model.SideBack},
		},
		{
			name: "title only",
			text: textOf("行驶证"),
			want: Verdict{Detected: true, Side: model.SideUnknown},
		},
		{
			name: "marker without enough keywords",
			text: textOf("备注 无"),
			want: NotDetected,
		},
		{
			name: "unrelated",
			text: textOf("hello"),
			want: NotDetected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VehicleLicense(tt.text); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBankCard(t *testing.T) {
	const cardRatio = 856.0 / 540.0

	tests := []struct {
		name  string
		text  Text
		ratio float64
		want  bool
	}{
		{"valid number", textOf("6217 0012 1002 4455 667"), cardRatio, true},
		{"valid number with keyword", textOf("中国工商银行", "6217 0012 1002 4455 667"), cardRatio, true},
		{"wrong aspect ratio", textOf("中国工商银行", "6217 0012 1002 4455 667"), 1.0, false},
		{"invalid number with keyword", textOf("招商银行 信用卡", "6222 0202 0011 2233 445"), cardRatio, true},
		{"invalid number without keyword", textOf("6222 0202 0011 2233 445"), cardRatio, false},
		{"keyword without number", textOf("中国银行"), cardRatio, false},
		{"english keyword", textOf("DEBIT CARD", "6222-0202-0011-2233-445"), cardRatio, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BankCard(tt.text, tt.ratio); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLuhn(t *testing.T) {
	tests := []struct {
		number string
		want   bool
	}{
		{"4539578763621486", true},
		{"4539578763621487", false},
		{"378282246310005", true},
		{"6217001210024455667", true},
		{"6222020200112233445", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Luhn(tt.number); got != tt.want {
			t.Errorf("Luhn(%q): got %v, want %v", tt.number, got, tt.want)
		}
	}
}

func TestValidCardNumber(t *testing.T) {
	tests := []struct {
		number string
		want   bool
	}{
		{"4539 5787 6362 1486", true},
		{"4539-5787-6362-1486", true},
		{"4539578763621487", false},
		{"4242", false},
		{"45395787636214860000", false},
		{"4539a78763621486", false},
	}
	for _, tt := range tests {
		if got := ValidCardNumber(tt.number); got != tt.want {
			t.Errorf("ValidCardNumber(%q): got %v, want %v", tt.number, got, tt.want)
		}
	}
}
