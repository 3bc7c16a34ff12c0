// Package qrcode decodes QR codes and classifies their payloads.
//
// # Decoding
//
// ZXingDecoder wraps gozxing. It tries the image as given, then a sharpened
// high-contrast copy, then a binarized copy, and stops at the first variant
// that yields any code. Every code found in that variant is returned.
//
// # Classification
//
// Classify matches a payload against an ordered table of URI prefixes,
// case-insensitively, and the first matching row wins. More specific
// prefixes sit above broader ones sharing their stem, so
// "alipays://platformapi/startapp?appId=" resolves to ALIPAY_MINI before the
// generic Alipay row is consulted. Payloads matching no prefix fall through
// to keyword rules for Chinese and Latin brand names, then a bare http(s)
// check, then TEXT.
//
// # Payment Detection
//
// IsPayment is independent of Classify. It layers rules from specific to
// generic: platform schemes and hosts, bank names, amount parameters, and
// finally payment keywords in short payloads that are not web links.
package qrcode
