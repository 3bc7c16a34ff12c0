// Package imaging prepares images for the recognition pipeline.
//
// It decodes files with EXIF orientation applied, caps the longer edge before
// recognition, derives high-contrast copies for QR decoding retries, and
// isolates a target ink colour ahead of text recognition.
//
// # Formats
//
// PNG, JPEG, GIF, BMP, TIFF and WebP are decoded. WebP and BMP are common for
// images fetched from chat and e-commerce CDNs.
//
// # Coordinate System
//
// All coordinates use the standard image convention: origin at the top-left,
// X increasing rightward and Y increasing downward.
//
// # Thread Safety
//
// Every function is stateless and returns a new image; inputs are never
// modified. A ColorFilter is immutable after construction and can be shared.
package imaging
