package detection

import (
	"regexp"
	"strings"

	"github.com/ironsheep/image-recognize/internal/model"
)

var (
	idFrontKeywords = []string{"姓名", "性别", "民族", "出生", "住址", "公民身份号码"}
	idBackKeywords  = []string{"签发机关", "签发日期", "有效期限", "有效期"}
	idExclusions    = []string{"驾驶证", "驾驶员", "准驾车型", "档案编号", "机动车驾驶证"}

	// Resident ID number: region, birth date, sequence and check character.
	idNumber = regexp.MustCompile(`[1-9]\d{5}(19|20)\d{2}(0[1-9]|1[0-2])(0[1-9]|[12]\d|3[01])\d{3}[0-9xX]`)
)

// IDCard detects a resident identity card.
func IDCard(t Text) Verdict {
	if t.containsAny(idExclusions...) {
		return NotDetected
	}

	front := t.found(idFrontKeywords)
	back := t.found(idBackKeywords)

	if len(front) >= 3 && t.inReadingOrder(front) {
		switch {
		case idNumber.MatchString(strings.ReplaceAll(t.joined, " ", "")),
			t.contains("居民身份证"),
			len(front) >= 4:
			return detected(model.SideFront)
		}
	}

	if len(back) >= 2 && (t.contains("中华人民共和国") || len(back) >= 3) {
		return detected(model.SideBack)
	}

	if t.contains("居民身份证") && t.contains("公民身份号码") {
		return detected(model.SideFront)
	}
	return NotDetected
}
