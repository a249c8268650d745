// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// Version is the `@version: <major>.<minor>` annotation.
type Version struct {
	Major uint8
	Minor uint8
	Range hcl.Range
}

func (v Version) String() string { return fmt.Sprintf("%d.%d", v.Major, v.Minor) }

// Include is one `@include "<pattern>"` directive.
type Include struct {
	Pattern string
	Range   hcl.Range
}

// Define is one `@define <name> "<value>"` directive.
type Define struct {
	Name  string
	Value string
	Range hcl.Range
}

// Pragma records any other recognised directive, such as `@module` or
// `@requires`, with its raw argument text.
type Pragma struct {
	Name  string
	Args  string
	Range hcl.Range
}
