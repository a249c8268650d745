// Package config defines how configuration text reaches the core: the
// Document value and the Source interface that resolves `@include`
// patterns into documents.
//
// The core never touches the file system itself. The workspace package
// provides a Source backed by disk; MemorySource and Overlay in this package
// serve tests and documents held open by an editor.
package config
