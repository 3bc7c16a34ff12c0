// Package model defines the closed enumerations and the result record shared
// by the recognition pipeline, the cache and the ingress surfaces.
package model

// ImageType is the coarse category assigned to an image by one classification run.
type ImageType string

const (
	ImageTypeQRCode      ImageType = "QRCODE"
	ImageTypeIDCard      ImageType = "IDCARD"
	ImageTypeBankCard    ImageType = "BANKCARD"
	ImageTypeNormal      ImageType = "NORMAL"
	ImageTypeDriverCard  ImageType = "DRIVERCARD"
	ImageTypeVehicleCard ImageType = "VEHICLECARD"
	ImageTypeUnknown     ImageType = "UNKNOWN"
)

var imageTypeNames = map[ImageType]string{
	ImageTypeQRCode:      "二维码",
	ImageTypeIDCard:      "身份证",
	ImageTypeBankCard:    "银行卡",
	ImageTypeNormal:      "普通图片",
	ImageTypeDriverCard:  "驾驶证",
	ImageTypeVehicleCard: "行驶证",
	ImageTypeUnknown:     "未知类型",
}

// DisplayName returns the user-facing name of t. Values outside the
// enumeration are reported with the UNKNOWN name.
func (t ImageType) DisplayName() string {
	if name, ok := imageTypeNames[t]; ok {
		return name
	}
	return imageTypeNames[ImageTypeUnknown]
}

// HasSide reports whether images of this type carry a front/back orientation.
func (t ImageType) HasSide() bool {
	switch t {
	case ImageTypeIDCard, ImageTypeDriverCard, ImageTypeVehicleCard:
		return true
	}
	return false
}

// Side is the orientation of a two-sided document.
type Side string

const (
	SideFront   Side = "front"
	SideBack    Side = "back"
	SideUnknown Side = "unknown"
)

// DisplayName returns the user-facing name of s.
func (s Side) DisplayName() string {
	switch s {
	case SideFront:
		return "正面"
	case SideBack:
		return "反面"
	}
	return "未知"
}

// ResultKind tags the outcome of content extraction.
type ResultKind string

const (
	KindQRCode ResultKind = "qr_code"
	KindText   ResultKind = "text"
	KindNone   ResultKind = "none"
	KindError  ResultKind = "error"
)
