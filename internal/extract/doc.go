// Package extract obtains raw text or structured metadata for a file via
// external tool invocations (pdftotext, exiftool), shielding callers from
// tool absence and failure with sentinel values.
package extract
