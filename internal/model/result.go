package model

import "math"

// QRCodeInfo describes one decoded QR payload.
type QRCodeInfo struct {
	Content     string     `json:"content"`
	Code        QRCodeType `json:"code"`
	Name        string     `json:"name"`
	IsPayment   bool       `json:"isPayment"`
	PaymentType string     `json:"paymentType,omitempty"`
}

// RecognitionResult is the output of one recognition run and the value held
// by both cache tiers. It is not modified after it has been returned.
type RecognitionResult struct {
	ImageType     ImageType    `json:"imageType"`
	ImageTypeName string       `json:"imageTypeName"`
	OCRContent    string       `json:"ocrContent"`
	QRContent     string       `json:"qrContent"`
	QRType        QRCodeType   `json:"qrType"`
	QRTypeName    string       `json:"qrTypeName"`
	Kind          ResultKind   `json:"type"`
	QRElapsed     float64      `json:"qr_time"`
	TextElapsed   float64      `json:"text_time"`
	Side          Side         `json:"side,omitempty"`
	SideName      string       `json:"sideName,omitempty"`
	Error         string       `json:"error,omitempty"`
	QRCodes       []QRCodeInfo `json:"qrCodes,omitempty"`
}

// NewResult returns a result for imageType with the display name filled in.
func NewResult(imageType ImageType) *RecognitionResult {
	return &RecognitionResult{
		ImageType:     imageType,
		ImageTypeName: imageType.DisplayName(),
	}
}

// SetSide records the document orientation.
func (r *RecognitionResult) SetSide(side Side) {
	r.Side = side
	r.SideName = side.DisplayName()
}

// ErrorResult is the data payload of a failed request.
func ErrorResult(message string) *RecognitionResult {
	r := NewResult(ImageTypeUnknown)
	r.Kind = KindError
	r.Error = message
	return r
}

// Seconds rounds a duration expressed in seconds to two decimals.
func Seconds(s float64) float64 {
	return math.Round(s*100) / 100
}
