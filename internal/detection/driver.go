package detection

import "github.com/ironsheep/image-recognize/internal/model"

var (
	driverFrontKeywords = []string{"姓名", "性别", "国籍", "住址", "出生日期", "初次领证日期", "准驾车型"}
	driverBackKeywords  = []string{"档案编号", "记分", "发证机关", "有效期限"}
	driverTitles        = []string{"驾驶证", "驾驶员", "机动车驾驶证"}
)

// DriverLicense detects a motor vehicle driver's license.
func DriverLicense(t Text) Verdict {
	if t.containsAny("居民身份证", "公民身份号码") && !t.containsAny("驾驶证", "驾驶员") {
		return NotDetected
	}
	if !t.containsAny(driverTitles...) {
		return NotDetected
	}

	front := t.found(driverFrontKeywords)
	back := t.found(driverBackKeywords)

	switch {
	case len(front) >= 3 && t.inReadingOrder(front):
		return detected(model.SideFront)
	case len(back) >= 2:
		return detected(model.SideBack)
	case t.contains("驾驶证"):
		return detected(sideByCount(len(front), len(back)))
	}
	return NotDetected
}

func sideByCount(front, back int) model.Side {
	switch {
	case front > back:
		return model.SideFront
	case back > front:
		return model.SideBack
	}
	return model.SideUnknown
}
