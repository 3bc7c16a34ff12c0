package detection

import "github.com/ironsheep/image-recognize/internal/model"

var (
	vehicleMarkers = []string{
		"中华人民共和国机动车行驶证", "行驶证", "机动车登记证书", "车辆识别代号", "核定载人",
		"发动机号码", "档案编号", "注册日期", "核定载质量", "备注",
	}
	vehicleFrontKeywords = []string{"品牌型号", "车辆类型", "行驶证", "所有人", "住址", "使用性质", "发证日期"}
	vehicleBackKeywords  = []string{"检验记录", "核定载人", "核定载质量", "档案编号", "总质量", "备注", "整备质量"}
)

// VehicleLicense detects a motor vehicle registration certificate.
func VehicleLicense(t Text) Verdict {
	if !t.containsAny(vehicleMarkers...) {
		return NotDetected
	}

	front := len(t.found(vehicleFrontKeywords))
	back := len(t.found(vehicleBackKeywords))

	switch {
	case front >= 3 && front > back:
		return detected(model.SideFront)
	case back >= 2 && back > front:
		return detected(model.SideBack)
	case t.contains("行驶证"):
		return detected(model.SideUnknown)
	}
	return NotDetected
}
