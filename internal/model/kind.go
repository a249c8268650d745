// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

// ObjectKind is the closed set of top-level declaration kinds.
type ObjectKind int

const (
	KindSource ObjectKind = iota
	KindDestination
	KindLog
	KindFilter
	KindParser
	KindRewrite
	KindTemplate
)

var kindNames = [...]string{
	KindSource:      "source",
	KindDestination: "destination",
	KindLog:         "log",
	KindFilter:      "filter",
	KindParser:      "parser",
	KindRewrite:     "rewrite",
	KindTemplate:    "template",
}

// String returns the keyword that introduces objects of this kind.
func (k ObjectKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ObjectKinds lists every kind in declaration order.
func ObjectKinds() []ObjectKind {
	return []ObjectKind{KindSource, KindDestination, KindLog, KindFilter, KindParser, KindRewrite, KindTemplate}
}

// ParseObjectKind maps a keyword to its kind.
func ParseObjectKind(keyword string) (ObjectKind, bool) {
	for i, name := range kindNames {
		if name == keyword {
			return ObjectKind(i), true
		}
	}
	return 0, false
}
