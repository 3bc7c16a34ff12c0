package model

import (
	"encoding/json"
	"testing"
)

func TestImageTypeDisplayName(t *testing.T) {
	tests := []struct {
		typ  ImageType
		want string
	}{
		{ImageTypeQRCode, "二维码"},
		{ImageTypeIDCard, "身份证"},
		{ImageTypeDriverCard, "驾驶证"},
		{ImageTypeVehicleCard, "行驶证"},
		{ImageType("BOGUS"), "未知类型"},
	}
	for _, tt := range tests {
		if got := tt.typ.DisplayName(); got != tt.want {
			t.Errorf("%s.DisplayName(): got %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestSideDisplayName(t *testing.T) {
	if got := SideFront.DisplayName(); got != "正面" {
		t.Errorf("front: got %q", got)
	}
	if got := SideBack.DisplayName(); got != "反面" {
		t.Errorf("back: got %q", got)
	}
	if got := SideUnknown.DisplayName(); got != "未知" {
		t.Errorf("unknown: got %q", got)
	}
}

func TestErrorResultJSON(t *testing.T) {
	data, err := json.Marshal(ErrorResult("boom"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := map[string]any{
		"type":          "error",
		"imageType":     "UNKNOWN",
		"imageTypeName": "未知类型",
		"ocrContent":    "",
		"qrContent":     "",
		"qrType":        "",
		"qrTypeName":    "",
		"error":         "boom",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("field %s: got %v, want %v", k, got[k], v)
		}
	}
	if _, ok := got["side"]; ok {
		t.Error("side should be omitted when unset")
	}
}

func TestSeconds(t *testing.T) {
	if got := Seconds(1.23456); got != 1.23 {
		t.Errorf("got %v, want 1.23", got)
	}
}
