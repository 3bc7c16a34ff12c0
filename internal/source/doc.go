// Package source turns the request forms an image can arrive in into a local
// file the pipeline can read.
//
// Remote URLs are downloaded, inline base64 data is decoded and uploads are
// staged to disk. Every function returns the file path together with a
// release function the caller must run when done; release removes files the
// package created for the request and never touches caller-owned files.
//
// With KeepImages set, fetched images are stored in the cache root as
// "{key}{ext}" and survive the request, subject to the cache sweep.
package source
