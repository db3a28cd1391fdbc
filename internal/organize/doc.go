// Package organize runs the classification and relocation pipeline: scan or
// audit, extract, classify, resolve a date, build the destination, and move.
// One Pipeline invocation processes one file family (documents or media) and
// produces a Summary that feeds the history ledger and run notifications.
package organize
