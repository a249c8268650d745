// Package completion answers "what is valid to type here?".
//
// A cursor is first classified into a Context: Root, or the kind of the
// object (or unfinished declaration) it sits in. Inside an object the text
// between the declaration start and the cursor is scanned for unclosed
// braces and parentheses, which yields the enclosing driver and, when nested
// deeper, the inner block. That triple is looked up in the grammar database.
// Candidates are finally filtered and ranked against the word being typed.
package completion
