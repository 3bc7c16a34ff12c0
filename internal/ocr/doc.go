// Package ocr defines the text-recognition contract used by the recognition
// pipeline.
//
// An Engine turns an image into recognized lines, each with its bounding box
// and a confidence in [0, 1]. The document detectors and the full-text
// extraction both work on these lines, so one recognition pass serves the
// whole pipeline.
//
// # Engines
//
// The production engine lives in the tesseract subpackage and wraps
// Tesseract through gosseract/v2. Tests substitute their own Engine.
//
// # Prerequisites
//
// Tesseract and its language data must be installed for the production
// engine:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-chi-sim
//   - macOS: brew install tesseract tesseract-lang
//
// The default language set is "chi_sim" plus "eng"; identity documents and
// bank cards mix both scripts.
//
// # Confidence
//
// Confidence is normalized to 0.0-1.0. FullText keeps only lines strictly
// above its threshold; the document detectors see every line.
package ocr
