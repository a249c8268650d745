// Package include assembles a Configuration from a main document and every
// snippet reachable from it through `@include`.
//
// Assembly happens in three steps. Discovery parses each document, asks the
// config.Source for the documents its include directives name and recurses,
// stopping below the depth ceiling. Resolution then walks the snippet tree
// bottom-up, merging each snippet's children in lexical order of identity
// before its own content, and faults snippets that are too deep or declare
// `@version`. Finally the parse results are applied to the Configuration in
// merge order, snippets first and the main document last.
package include
