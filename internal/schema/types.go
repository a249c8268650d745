package schema

import (
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// HintType maps a declared value type onto the cty type a value must be
// convertible to. Hints that name an enumeration member or a nested block
// map to cty.DynamicPseudoType, which accepts anything.
func HintType(hint string) cty.Type {
	switch strings.Trim(hint, "<>") {
	case "yesno", "yes-or-no", "boolean":
		return cty.Bool
	case "positive-integer", "nonnegative-integer", "integer", "number", "float":
		return cty.Number
	case "string-list", "string-array":
		return cty.List(cty.String)
	case "string", "path", "template-content", "identifier":
		return cty.String
	default:
		return cty.DynamicPseudoType
	}
}

// CtyType is the type every declared hint agrees on, or
// cty.DynamicPseudoType when the hints disagree or there are none.
func (o Option) CtyType() cty.Type {
	if len(o.Hints) == 0 {
		return cty.DynamicPseudoType
	}
	ty := HintType(o.Hints[0])
	for _, h := range o.Hints[1:] {
		if !HintType(h).Equals(ty) {
			return cty.DynamicPseudoType
		}
	}
	return ty
}
