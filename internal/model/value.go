// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Value, the tagged variant that holds every typed value the
// configuration language can express.
//
// A single struct with a Kind discriminator is used instead of an interface
// per variant. The set of variants is closed, so a switch over Kind is
// exhaustive and values stay comparable with ==-like structural helpers.
package model

import (
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// ValueKind discriminates the Value variants.
type ValueKind int

const (
	ValueEmpty ValueKind = iota
	ValueYesNo
	ValuePositiveInteger
	ValueNonNegativeInteger
	ValueStringOrNumber
	ValuePath
	ValueString
	ValueStringList
	ValueInnerBlock
	ValueIdentifier
)

var valueKindNames = [...]string{
	ValueEmpty:              "empty",
	ValueYesNo:              "yes-no",
	ValuePositiveInteger:    "positive-integer",
	ValueNonNegativeInteger: "non-negative-integer",
	ValueStringOrNumber:     "string-or-number",
	ValuePath:               "path",
	ValueString:             "string",
	ValueStringList:         "string-list",
	ValueInnerBlock:         "inner-block",
	ValueIdentifier:         "identifier",
}

func (k ValueKind) String() string {
	if k < 0 || int(k) >= len(valueKindNames) {
		return "unknown"
	}
	return valueKindNames[k]
}

// Value is one typed value. Only the fields relevant to Kind are populated:
// Bool for YesNo, Int for the integer variants, Text for the textual variants,
// List for StringList and Block for InnerBlock.
type Value struct {
	Kind  ValueKind
	Bool  bool
	Int   uint64
	Text  string
	List  []string
	Block *Driver
}

func Empty() Value { return Value{Kind: ValueEmpty} }
func YesNo(b bool) Value { return Value{Kind: ValueYesNo, Bool: b} }
func PositiveInteger(n uint64) Value { return Value{Kind: ValuePositiveInteger, Int: n} }
func NonNegativeInteger(n uint64) Value { return Value{Kind: ValueNonNegativeInteger, Int: n} }
func StringOrNumber(text string) Value { return Value{Kind: ValueStringOrNumber, Text: text} }
func Path(text string) Value { return Value{Kind: ValuePath, Text: text} }
func String(text string) Value { return Value{Kind: ValueString, Text: text} }
func Identifier(name string) Value { return Value{Kind: ValueIdentifier, Text: name} }
func StringList(items ...string) Value { return Value{Kind: ValueStringList, List: items} }
func InnerBlock(block *Driver) Value { return Value{Kind: ValueInnerBlock, Block: block} }

// Equal reports structural equality.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case ValueEmpty:
		return true
	case ValueYesNo:
		return v.Bool == o.Bool
	case ValuePositiveInteger, ValueNonNegativeInteger:
		return v.Int == o.Int
	case ValueStringList:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if v.List[i] != o.List[i] {
				return false
			}
		}
		return true
	case ValueInnerBlock:
		return v.Block.Equal(o.Block)
	default:
		return v.Text == o.Text
	}
}

// Compare orders values by kind first and then by their rendered form.
func (v Value) Compare(o Value) int {
	if v.Kind != o.Kind {
		if v.Kind < o.Kind {
			return -1
		}
		return 1
	}
	return strings.Compare(v.String(), o.String())
}

// String renders the value in configuration syntax.
func (v Value) String() string {
	switch v.Kind {
	case ValueEmpty:
		return ""
	case ValueYesNo:
		if v.Bool {
			return "yes"
		}
		return "no"
	case ValuePositiveInteger, ValueNonNegativeInteger:
		return strconv.FormatUint(v.Int, 10)
	case ValueString, ValuePath:
		return strconv.Quote(v.Text)
	case ValueStringList:
		return strconv.Quote(strings.Join(v.List, ":"))
	case ValueInnerBlock:
		if v.Block == nil {
			return "()"
		}
		return v.Block.body()
	default:
		return v.Text
	}
}

// CtyValue converts the value into its cty counterpart, which is what option
// values are checked against when their declared type is known.
func (v Value) CtyValue() cty.Value {
	switch v.Kind {
	case ValueEmpty:
		return cty.NullVal(cty.DynamicPseudoType)
	case ValueYesNo:
		return cty.BoolVal(v.Bool)
	case ValuePositiveInteger, ValueNonNegativeInteger:
		return cty.NumberUIntVal(v.Int)
	case ValueStringList:
		if len(v.List) == 0 {
			return cty.ListValEmpty(cty.String)
		}
		items := make([]cty.Value, len(v.List))
		for i, s := range v.List {
			items[i] = cty.StringVal(s)
		}
		return cty.ListVal(items)
	case ValueInnerBlock:
		if v.Block == nil || len(v.Block.Options) == 0 {
			return cty.EmptyObjectVal
		}
		attrs := make(map[string]cty.Value, len(v.Block.Options))
		for name, p := range v.Block.Options {
			attrs[name] = p.Value.CtyValue()
		}
		return cty.ObjectVal(attrs)
	default:
		return cty.StringVal(v.Text)
	}
}
