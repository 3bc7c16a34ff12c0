// Package pipeline classifies an image and extracts its content.
//
// Classify runs a fixed-priority chain and the first positive step wins:
//
//  1. QR code: any decoded payload.
//  2. ID card, then driver's license, then vehicle registration, each with
//     a front/back side.
//  3. Bank card.
//  4. Otherwise a normal image. An image that cannot be decoded is UNKNOWN.
//
// Recognize classifies and then fills in the content: the first QR payload
// when there is one, otherwise the recognized text. QR decoding and text
// recognition each run at most once per call and their results are shared
// between classification and extraction.
//
// Text recognition failures do not fail Recognize. The result carries kind
// "error" and the engine's message, and the image type is still reported.
package pipeline
