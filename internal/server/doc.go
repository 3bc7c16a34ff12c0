// Package server exposes the recognition service over HTTP.
//
// # Routes
//
//   - POST /recognize: classify one image and extract its content
//   - GET /health: liveness, version, uptime, cache and host memory figures
//   - GET /metrics: Prometheus exposition
//
// # Request
//
// /recognize reads exactly one image source. Fields are checked in this
// order and the first one present wins:
//
//   - image_url: an http(s) URL to download
//   - image_base64: inline data, optionally with a data: prefix
//   - image_path: a file on the server host
//   - image: a multipart file upload
//
// The text fields may arrive as a urlencoded form, as multipart values or as
// a JSON object.
//
// # Response
//
// Every /recognize response is HTTP 200 with an envelope:
//
//	{"code": 200, "message": "成功", "data": {...}}
//
// The envelope code carries the outcome: 400 when no source field is
// present, 404 when image_path does not exist, 408 when the request timed
// out and 500 for any other failure. Failed requests still carry a data
// object with type "error", imageType UNKNOWN and an error message.
//
// Responses also carry X-Request-ID, and /recognize adds X-Cache with HIT or
// MISS.
package server
