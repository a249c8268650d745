package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/syslogng-lsp/internal/model"
)

// annotation parses the `@` directive at the start of the chunk. Directives
// never span lines; the number of bytes consumed is returned.
func (p *docParser) annotation() int {
	end := strings.IndexByte(p.buf, '\n')
	if end < 0 {
		end = len(p.buf)
	}
	line := strings.TrimRight(p.buf[:end], " \t\r")
	rng := p.ix.rng(p.base, p.base+len(line))

	nameLen := 1
	for nameLen < len(line) && isLetter(line[nameLen]) {
		nameLen++
	}
	name := line[1:nameLen]
	args := strings.TrimSpace(line[nameLen:])

	switch name {
	case "version":
		p.version(args, rng)
	case "include":
		pattern, rest, ok := quoted(args)
		if !ok || strings.TrimSpace(rest) != "" || pattern == "" {
			p.errorf(rng, "malformed @include annotation", `expected @include "<file or pattern>"`)
			break
		}
		p.res.Includes = append(p.res.Includes, model.Include{Pattern: pattern, Range: rng})
	case "define":
		p.define(args, rng)
	case "module", "requires":
		p.res.Pragmas = append(p.res.Pragmas, model.Pragma{Name: name, Args: args, Range: rng})
	default:
		p.res.Diagnostics = append(p.res.Diagnostics, &hcl.Diagnostic{
			Severity: hcl.DiagWarning,
			Summary:  fmt.Sprintf("unknown annotation %q", line[:nameLen]),
			Subject:  &rng,
		})
	}
	return end
}

func (p *docParser) version(args string, rng hcl.Range) {
	const usage = "expected @version: <major>.<minor>"
	if !strings.HasPrefix(args, ":") {
		p.errorf(rng, "malformed @version annotation", usage)
		return
	}
	major, minor, ok := strings.Cut(strings.TrimSpace(args[1:]), ".")
	if !ok || major == "" || minor == "" {
		p.errorf(rng, "malformed @version annotation", usage)
		return
	}
	var parts [2]uint8
	for i, s := range []string{major, minor} {
		n, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			p.errorf(rng, fmt.Sprintf("invalid @version component %q", s), "version components must be integers between 0 and 255")
			return
		}
		parts[i] = uint8(n)
	}
	if p.res.Version != nil {
		p.errorf(rng, "duplicate @version annotation",
			fmt.Sprintf("the version is already declared on line %d", p.res.Version.Range.Start.Line))
		return
	}
	p.res.Version = &model.Version{Major: parts[0], Minor: parts[1], Range: rng}
}

func (p *docParser) define(args string, rng hcl.Range) {
	n := wordLength(args)
	if n == 0 {
		p.errorf(rng, "malformed @define annotation", `expected @define <name> "<value>"`)
		return
	}
	name := args[:n]
	raw := strings.TrimSpace(args[n:])
	value := raw
	if body, rest, ok := quoted(raw); ok && strings.TrimSpace(rest) == "" {
		value = body
	}
	p.res.Defines = append(p.res.Defines, model.Define{Name: name, Value: value, Range: rng})
}

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
