// Package concat implements the include/path preprocessor: it drives
// dirscan over a LIFO stack of mapped file regions, resolving INCLUDE and
// PATHS directives through pathalias and source, and accumulating the
// flattened byte stream that lexer/registry/parser consume next.
//
// The work-stack algorithm — push the remaining tail of the current region
// before pushing a new include's full region on top of it — gives DFS
// pre-order over the include tree using nothing but a slice used as a
// stack, with each region's mapped handle owned by exactly one stack frame
// at a time, so a frame reaching its own end is always safe to close
// immediately.
package concat

import (
	"path"
	"strings"

	"github.com/opm-go/deckparser/deckerr"
	"github.com/opm-go/deckparser/dirscan"
	"github.com/opm-go/deckparser/lexer"
	"github.com/opm-go/deckparser/pathalias"
	"github.com/opm-go/deckparser/source"
)

// Result is the output of Concatenate: the flattened byte buffer and the
// ordered list of files that contributed to it, root first.
type Result struct {
	Bytes        []byte
	VisitedPaths []string
}

type frame struct {
	region source.Region
	data   []byte
	pos    int
	end    int
}

// Concatenate flattens the include tree rooted at rootPath into a single
// byte buffer. opener supplies mapped regions and norm
// resolves INCLUDE paths relative to the root deck's directory.
func Concatenate(rootPath string, opener source.Opener, norm source.PathNormalizer) (Result, error) {
	rootDir := path.Dir(strings.ReplaceAll(rootPath, `\`, "/"))

	root, err := opener.Open(rootPath)
	if err != nil {
		return Result{}, err
	}

	data := root.Bytes()
	stack := []*frame{{region: root, data: data, pos: 0, end: len(data)}}
	visited := []string{rootPath}
	aliases := pathalias.New()
	var out []byte

	fail := func(err error) (Result, error) {
		closeAll(stack)
		return Result{}, err
	}

	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		pos, dir := dirscan.Find(fr.data, fr.pos, fr.end)
		out = append(out, fr.data[fr.pos:pos]...)

		if pos == fr.end {
			if err := fr.region.Close(); err != nil {
				return fail(err)
			}
			continue
		}

		wordLen := len("PATHS")
		if dir == dirscan.Include {
			wordLen = len("INCLUDE")
		}
		if pos+wordLen < fr.end && isAlnum(fr.data[pos+wordLen]) {
			// embedded false positive (e.g. INCLUDED_THING): not a real
			// directive, copy the keyword-shaped bytes verbatim and resume
			// scanning past them within the same frame.
			out = append(out, fr.data[pos:pos+wordLen]...)
			stack = append(stack, &frame{region: fr.region, data: fr.data, pos: pos + wordLen, end: fr.end})
			continue
		}

		switch dir {
		case dirscan.Include:
			rawPath, newPos, perr := parseInclude(fr.data, pos, fr.end)
			if perr != nil {
				return fail(perr)
			}
			stack = append(stack, &frame{region: fr.region, data: fr.data, pos: newPos, end: fr.end})

			resolved, rerr := aliases.Resolve(rawPath)
			if rerr != nil {
				return fail(rerr)
			}
			resolved = norm.Normalize(rootDir, resolved)

			child, oerr := opener.Open(resolved)
			if oerr != nil {
				return fail(oerr)
			}
			visited = append(visited, resolved)
			childData := child.Bytes()
			stack = append(stack, &frame{region: child, data: childData, pos: 0, end: len(childData)})

		case dirscan.Paths:
			pairs, newPos, perr := parsePaths(fr.data, pos, fr.end)
			if perr != nil {
				return fail(perr)
			}
			aliases.Insert(pairs...)
			stack = append(stack, &frame{region: fr.region, data: fr.data, pos: newPos, end: fr.end})
		}
	}

	return Result{Bytes: out, VisitedPaths: visited}, nil
}

func closeAll(stack []*frame) {
	for _, fr := range stack {
		fr.region.Close()
	}
}

func isAlnum(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

// parseInclude parses "INCLUDE 'path' /" starting at pos, returning the raw
// (alias-unexpanded) path and the absolute offset just past the directive.
func parseInclude(data []byte, pos, end int) (string, int, error) {
	lx := lexer.New(string(data[pos:end]))
	word, ok := lx.ScanBareWord()
	if !ok || word != "INCLUDE" {
		return "", 0, deckerr.New(deckerr.MalformedDirective, "expected INCLUDE directive")
	}
	lx.SkipSpaceAndComments()
	raw, err := lx.ScanString()
	if err != nil {
		return "", 0, deckerr.Wrap(deckerr.MalformedDirective, err, "invalid INCLUDE path")
	}
	lx.SkipSpaceAndComments()
	if !lx.AtSlash() {
		return "", 0, deckerr.New(deckerr.MalformedDirective, "INCLUDE missing terminating /")
	}
	lx.ConsumeRecordTerminator()
	offset, _, _ := lx.Pos()
	return raw, pos + offset, nil
}

// parsePaths parses a "PATHS 'name' 'expansion' / ... /" block starting at
// pos, returning the parsed pairs in source order and the absolute offset
// just past the block's trailing terminator.
func parsePaths(data []byte, pos, end int) ([]pathalias.Pair, int, error) {
	lx := lexer.New(string(data[pos:end]))
	word, ok := lx.ScanBareWord()
	if !ok || word != "PATHS" {
		return nil, 0, deckerr.New(deckerr.MalformedDirective, "expected PATHS directive")
	}

	var pairs []pathalias.Pair
	for {
		lx.SkipSpaceAndComments()
		if lx.AtSlash() {
			lx.ConsumeRecordTerminator()
			break
		}
		name, err := lx.ScanString()
		if err != nil {
			return nil, 0, deckerr.Wrap(deckerr.MalformedDirective, err, "invalid PATHS alias name")
		}
		lx.SkipSpaceAndComments()
		expansion, err := lx.ScanString()
		if err != nil {
			return nil, 0, deckerr.Wrap(deckerr.MalformedDirective, err, "invalid PATHS expansion")
		}
		lx.SkipSpaceAndComments()
		if !lx.AtSlash() {
			return nil, 0, deckerr.New(deckerr.MalformedDirective, "PATHS pair missing terminating /")
		}
		lx.ConsumeRecordTerminator()
		pairs = append(pairs, pathalias.Pair{Name: name, Expansion: expansion})
	}

	offset, _, _ := lx.Pos()
	return pairs, pos + offset, nil
}
