// Package objectstore keeps project documents as JSON objects in an
// S3-compatible bucket.
//
// Each document lives at <prefix>/<projectId>/<documentId>.json. The entity
// kind is not part of the key; it is recovered from the document's type on
// load, so a document whose type changes keeps a single object.
package objectstore
