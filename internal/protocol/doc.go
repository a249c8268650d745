// Package protocol holds the editor-facing value types: 0-based positions
// measured in UTF-16 code units, completion items, diagnostics and text
// changes. Conversions from byte offsets and hcl ranges happen here so the
// rest of the module can work in bytes.
package protocol
