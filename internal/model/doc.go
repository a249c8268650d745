// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the in-memory representation of a syslog-ng
// configuration. The parser populates it and the completion engine, the
// validator and the session query it.
//
// # Core Concepts
//
// The model is built around a few key structures:
//
//   - Configuration: The root aggregate of one editing session. It owns the main
//     document text, its annotations, the include snippets reachable from it and
//     the ordered list of top-level objects parsed from all of them.
//
//   - Object: One top-level declaration such as `source s_net { ... };`. Its
//     kind is fixed when it is constructed, and so is its location.
//
//   - Driver: One call inside an object body, e.g. `network(ip("x") port(514))`,
//     holding positional values and named options.
//
//   - Parameter: A named option occurrence together with its typed Value.
//
//   - Snippet: A text fragment pulled in by `@include`. Snippets form a tree and
//     are merged deterministically by the include package.
//
// Every located element carries an hcl.Range whose Filename is the identity of
// the document it was parsed from. Lines and columns are 1-based, byte offsets
// are 0-based, exactly as in hcl.
package model
