// Package dirscan implements the keyword scanner that the include
// preprocessor drives over each mapped file region: a stride-6 search for
// the next line-leading INCLUDE or PATHS directive.
//
// It's a Boyer-Moore-ish scan adapted to two patterns at once: most of a
// multi-megabyte deck is digits, so the scanner only has to look closely at
// the small fraction of bytes that could plausibly be part of either
// keyword.
package dirscan

// Directive names the keyword found at a Find result.
type Directive int

const (
	// None means Find reached the end of the region with no match.
	None Directive = iota
	// Include marks an INCLUDE directive.
	Include
	// Paths marks a PATHS directive.
	Paths
)

// rewind[c-'A'] gives, for each letter that appears in either "PATHS" or
// "INCLUDE", the number of bytes to step back from an occurrence of that
// letter to reach the keyword's first letter ('P' or 'I'). Indexed 'A'
// through 'U', the span covering every letter in both words.
var rewind [21]int

func init() {
	set := func(letter byte, off int) { rewind[letter-'A'] = off }
	for i, c := range []byte("PATHS") {
		set(c, i)
	}
	for i, c := range []byte("INCLUDE") {
		set(c, i)
	}
}

const minTail = 10 // len("INCLUDE") + room for a quote and a letter of slack

// isCandidateLetter reports whether c could be part of PATHS or INCLUDE.
func isCandidateLetter(c byte) bool {
	switch c {
	case 'P', 'A', 'T', 'H', 'S', 'I', 'N', 'C', 'L', 'U', 'D', 'E':
		return true
	default:
		return false
	}
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' }

// candidate checks a position that stride-matched a letter of PATHS or
// INCLUDE: first that the full keyword is actually there, then that the
// keyword is the first non-blank content on its line (or the very start of
// the region).
func candidate(b []byte, begin, end, fst int) (Directive, bool) {
	if end-fst < minTail {
		return None, false
	}

	var dir Directive
	switch b[fst] {
	case 'P':
		if string(b[fst+1:fst+5]) != "ATHS" {
			return None, false
		}
		dir = Paths
	case 'I':
		if string(b[fst+1:fst+7]) != "NCLUDE" {
			return None, false
		}
		dir = Include
	default:
		return None, false
	}

	if fst == begin {
		return dir, true
	}

	i := fst - 1
	for i >= begin && isBlank(b[i]) {
		i--
	}
	if i < begin {
		// ran off the start of the region on an all-blank prefix: treat
		// the implicit line start the same as a literal newline.
		return dir, true
	}
	if b[i] == '\n' {
		return dir, true
	}
	return None, false
}

// Find returns the offset, relative to b, of the first position in
// b[begin:end] where INCLUDE or PATHS appears as the first non-blank token
// on a line (or at the very start of the region), together with which
// keyword matched. It returns (end, None) if no such position exists.
//
// Find advances in strides of 6 bytes (the length of "PATHS" plus one),
// testing only whether the byte at the cursor could be part of either
// keyword before doing any real work — the overwhelming majority of a
// deck's bytes are numeric and fail that test in one branch. Bound checks
// happen before every dereference, so Find never reads at or past end, and
// is safe to call with begin == 0 (the very first byte of the file).
func Find(b []byte, begin, end int) (int, Directive) {
	if end > len(b) {
		end = len(b)
	}

	fst := begin - 2 // first stride lands on begin+4
	for {
		fst += 6
		if fst >= end {
			return end, None
		}
		if !isCandidateLetter(b[fst]) {
			continue
		}

		cur := fst - rewind[b[fst]-'A']
		if cur < begin || cur >= end {
			continue
		}
		if dir, ok := candidate(b, begin, end, cur); ok {
			return cur, dir
		}
	}
}
