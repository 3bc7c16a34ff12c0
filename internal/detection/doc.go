// Package detection decides which kind of document a recognized image shows.
//
// Every detector works on the text lines an OCR engine produced for the
// image; none of them looks at pixels. They are keyword heuristics, not
// trained classifiers, and are meant to be run in a fixed priority order by
// the caller: ID card, driver's license, vehicle registration, bank card.
//
// # Text Preparation
//
// NewText lower-cases every line and removes the whitespace inside it,
// because the simplified Chinese model separates CJK glyphs with spaces
// ("姓 名"). Lines are then joined with single spaces twice: once in
// recognition order and once sorted by the vertical center of their bounding
// box. The second form backs the order checks.
//
// # Document Detectors
//
// IDCard, DriverLicense and VehicleLicense each count front and back
// keywords. A front verdict additionally requires the matched front
// keywords to appear top to bottom in their printed order, which rejects
// unrelated text that merely mentions a few of them.
//
//   - IDCard excludes text carrying driver's license keywords and uses the
//     18-character resident ID number as extra front evidence.
//   - DriverLicense excludes ID card text that never mentions a driver.
//   - VehicleLicense reports side unknown when it only recognizes the title.
//
// # Bank Cards
//
// BankCard looks for grouped 15 to 19 digit numbers, validates them with the
// Luhn checksum, and requires a landscape card aspect ratio between 1.4 and
// 1.8. A number failing the checksum still counts when bank keywords are
// present.
package detection
