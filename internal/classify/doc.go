// Package classify assigns files to archive categories. Document
// classification runs two ordered rule tables: identity-bearing account
// kinds with per-rule validators, then topic kinds behind a global work
// exclusion, with a gated confidence score. Media classification is a pure
// extension-set membership test.
package classify
