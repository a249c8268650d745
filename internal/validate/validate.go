// Package validate checks parsed options against the grammar database.
//
// Only drivers the database knows are checked. Findings are warnings: the
// database describes common drivers and options, not every module a
// syslog-ng installation may load.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/vk/syslogng-lsp/internal/model"
	"github.com/vk/syslogng-lsp/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Options reports unknown option names and option values that do not fit
// the declared type, for every object in cfg except log paths.
func Options(cfg *model.Configuration, db *schema.Database) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, o := range cfg.Objects() {
		if o.Kind() == model.KindLog {
			continue
		}
		kind := o.Kind().String()
		for _, d := range o.Drivers() {
			if !db.HasDriver(kind, d.Name) {
				continue
			}
			diags = append(diags, checkOptions(db, kind, d.Name, "", d)...)
		}
	}
	return diags
}

func checkOptions(db *schema.Database, kind, driver, block string, d *model.Driver) hcl.Diagnostics {
	var diags hcl.Diagnostics
	blocks := map[string]bool{}
	if block == "" {
		for _, b := range db.Blocks(kind, driver) {
			blocks[b] = true
		}
	}

	for _, name := range d.OptionNames() {
		p := d.Options[name]
		canonical := strings.ReplaceAll(name, "_", "-")

		if blocks[canonical] && p.Value.Kind == model.ValueInnerBlock && p.Value.Block != nil {
			diags = append(diags, checkOptions(db, kind, driver, canonical, p.Value.Block)...)
			continue
		}
		opt, ok := db.Option(kind, driver, block, canonical)
		if !ok {
			if blocks[canonical] {
				continue
			}
			diags = append(diags, unknownOption(db, kind, driver, block, p))
			continue
		}
		if diag := checkValue(opt, p); diag != nil {
			diags = append(diags, diag)
		}
	}
	return diags
}

func unknownOption(db *schema.Database, kind, driver, block string, p model.Parameter) *hcl.Diagnostic {
	owner := fmt.Sprintf("%s driver %q", kind, driver)
	if block != "" {
		owner = fmt.Sprintf("%s() block of %s", block, owner)
	}
	d := &hcl.Diagnostic{
		Severity: hcl.DiagWarning,
		Summary:  fmt.Sprintf("unknown option %q for %s", p.Name, owner),
		Subject:  subject(p.Range),
	}
	if options, ok := db.Options(kind, driver, block); ok {
		names := make([]string, len(options))
		for i, o := range options {
			names[i] = o.Name
		}
		if guess := closestMatch(p.Name, names); guess != "" {
			d.Detail = fmt.Sprintf("did you mean %q?", guess)
		}
	}
	return d
}

// checkValue verifies that the value converts to the type the option
// declares. Empty values and options of undetermined type always pass.
func checkValue(opt schema.Option, p model.Parameter) *hcl.Diagnostic {
	want := opt.CtyType()
	v := p.Value
	if want == cty.DynamicPseudoType || v.Kind == model.ValueEmpty {
		return nil
	}
	switch {
	case want == cty.Number && v.Kind == model.ValueYesNo:
		// 0 and 1 lex as booleans.
		return nil
	case want == cty.String && v.Kind == model.ValueStringList:
		// A quoted string containing ':' lexes as a list.
		return nil
	case want.Equals(cty.List(cty.String)) && (v.Kind == model.ValueString || v.Kind == model.ValueIdentifier):
		return nil
	}
	if _, err := convert.Convert(v.CtyValue(), want); err != nil {
		return &hcl.Diagnostic{
			Severity: hcl.DiagWarning,
			Summary:  fmt.Sprintf("option %q expects %s, got %s", p.Name, opt.Hint(), v.Kind),
			Detail:   err.Error(),
			Subject:  subject(p.Range),
		}
	}
	return nil
}

// closestMatch returns the candidate closest to target, or "" when nothing
// is close.
func closestMatch(target string, candidates []string) string {
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

func subject(r hcl.Range) *hcl.Range {
	if r.Filename == "" {
		return nil
	}
	return &r
}
