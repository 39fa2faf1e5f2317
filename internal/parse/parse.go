// Package parse converts single script lines into typed commands.
//
// The command language is line-oriented: each trimmed, non-empty,
// non-comment line matches at most one of the five command forms. Matching
// uses pattern extraction (quoted strings, parenthesized argument lists,
// keyword delimiters), not a formal grammar - one extractor per command
// kind, each testable independently of the dispatch loop.
package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sigil-lang/sigil/internal/ir"
)

// DefaultReflectDepth applies when a REFLECT line has no DEPTH suffix.
const DefaultReflectDepth = 3

var (
	quotedRe     = regexp.MustCompile(`"([^"]+)"`)
	depthRe      = regexp.MustCompile(`DEPTH\s+(\d+)`)
	entityRe     = regexp.MustCompile(`ENTITY\("([^"]+)"\)`)
	fusionRe     = regexp.MustCompile(`FUSION\(([^)]+)\)`)
	originHashRe = regexp.MustCompile(`ORIGIN_HASH\("([^"]+)"\)`)
)

// Line parses one trimmed, non-empty, non-comment line. It returns the
// matched command and true, or nil and false when the line fits no
// recognized shape (including malformed sub-parts). A failed parse is
// never an error; each line is independent.
func Line(line string, catalogue ir.Catalogue) (ir.Command, bool) {
	switch {
	case strings.Contains(line, "DEFINE") && strings.Contains(line, ":="):
		return parseDefine(line)
	case strings.Contains(line, "REFLECT"):
		return parseReflect(line)
	case strings.Contains(line, "SYNTHESIZE") && strings.Contains(line, "ENTITY"):
		return parseSynthesize(line, catalogue)
	case strings.Contains(line, "VERIFY") && strings.Contains(line, "ORIGIN_HASH"):
		return parseVerify(line)
	case strings.Contains(line, "EXPORT_CHAIN"):
		return parseExportChain(line)
	default:
		return nil, false
	}
}

// parseDefine extracts DEFINE ∴ NAME := [a, b, c] LINK TARGET.
// The left side of := yields the name after stripping the DEFINE keyword
// and the consequence marker; the right side splits on LINK into the
// bracketed component list and the link target.
func parseDefine(line string) (ir.Command, bool) {
	left, right, found := strings.Cut(line, ":=")
	if !found {
		return nil, false
	}

	name := strings.ReplaceAll(left, "DEFINE", "")
	name = strings.ReplaceAll(name, "∴", "")
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}

	componentsPart, target, found := strings.Cut(right, "LINK")
	if !found {
		return nil, false
	}

	componentsPart = strings.Trim(strings.TrimSpace(componentsPart), "[]")
	components := splitAndTrim(componentsPart)

	target = strings.TrimSpace(target)
	if target == "" {
		return nil, false
	}

	return ir.DefineCommand{
		Name:       name,
		Components: components,
		LinkTarget: target,
	}, true
}

// parseReflect extracts REFLECT "question" ∴ RECURSIVE_LOOP_DEPTH n.
// The question is the first quoted substring; DEPTH is optional.
func parseReflect(line string) (ir.Command, bool) {
	m := quotedRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}

	depth := DefaultReflectDepth
	if dm := depthRe.FindStringSubmatch(line); dm != nil {
		n, err := strconv.Atoi(dm[1])
		if err != nil {
			return nil, false
		}
		depth = n
	}

	return ir.ReflectCommand{Question: m[1], Depth: depth}, true
}

// parseSynthesize extracts SYNTHESIZE ∴ ENTITY("name") := FUSION(a, b, c).
// Each fusion argument resolves against the catalogue by exact name,
// falling back to the literal string when unresolved.
func parseSynthesize(line string, catalogue ir.Catalogue) (ir.Command, bool) {
	em := entityRe.FindStringSubmatch(line)
	fm := fusionRe.FindStringSubmatch(line)
	if em == nil || fm == nil {
		return nil, false
	}

	labels := splitAndTrim(fm[1])
	components := make([]ir.ComponentRef, len(labels))
	for i, label := range labels {
		ref := ir.ComponentRef{Label: label}
		if sym, ok := catalogue.Resolve(label); ok {
			ref.Symbol = &sym
			ref.Label = sym.Glyph
		}
		components[i] = ref
	}

	return ir.SynthesizeCommand{Entity: em[1], Components: components}, true
}

// parseVerify extracts VERIFY ∴ ENTITY("name") WITH ORIGIN_HASH("literal").
func parseVerify(line string) (ir.Command, bool) {
	em := entityRe.FindStringSubmatch(line)
	hm := originHashRe.FindStringSubmatch(line)
	if em == nil || hm == nil {
		return nil, false
	}

	return ir.VerifyCommand{Entity: em[1], ExpectedHash: hm[1]}, true
}

// parseExportChain extracts EXPORT_CHAIN ∴ TO IPFS + ETHICAL_AUDIT_LOG.
// The destination set is determined by keyword presence; a line with no
// recognized destination still matches (the export runs with no sinks).
func parseExportChain(line string) (ir.Command, bool) {
	var destinations []string
	if strings.Contains(line, "IPFS") {
		destinations = append(destinations, "IPFS")
	}
	if strings.Contains(line, "AUDIT") || strings.Contains(line, "ETHICAL") {
		destinations = append(destinations, "ETHICAL_AUDIT_LOG")
	}
	if strings.Contains(line, "FILE") {
		destinations = append(destinations, "FILE")
	}

	return ir.ExportChainCommand{Destinations: destinations}, true
}

// splitAndTrim splits a comma-separated argument list, trimming whitespace
// and dropping empty entries.
func splitAndTrim(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
