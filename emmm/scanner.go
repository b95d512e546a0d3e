package emmm

// Scanner is an immutable view over a source string with a mutable cursor,
// per spec.md §4.1 (C1). Positions are character (rune) offsets, not byte
// offsets, so diagnostics stay correct over multi-byte input — the same
// contract nperez-losp/internal/scanner keeps over an io.Reader, adapted
// here to a fixed in-memory []rune since acceptUntil must be able to look
// arbitrarily far ahead, which a one-rune-lookahead stream reader cannot do
// cheaply.
type Scanner struct {
	source SourceDescriptor
	runes  []rune
	cursor int
}

// NewScanner creates a Scanner over src, identified as source in subsequent
// LocationRanges.
func NewScanner(source SourceDescriptor, src string) *Scanner {
	return &Scanner{source: source, runes: []rune(src)}
}

// Source returns the descriptor this scanner was created with.
func (s *Scanner) Source() SourceDescriptor { return s.source }

// position returns the current cursor offset in runes.
func (s *Scanner) position() int { return s.cursor }

// Position is the exported form of position, used by the parser to stamp
// LocationRanges.
func (s *Scanner) Position() int { return s.position() }

// isEOF reports whether the cursor has reached the end of the source.
func (s *Scanner) isEOF() bool { return s.cursor >= len(s.runes) }

// IsEOF is the exported form of isEOF.
func (s *Scanner) IsEOF() bool { return s.isEOF() }

// peek reports whether literal is a prefix of the remaining input, without
// advancing the cursor.
func (s *Scanner) peek(literal string) bool {
	want := []rune(literal)
	if s.cursor+len(want) > len(s.runes) {
		return false
	}
	for i, r := range want {
		if s.runes[s.cursor+i] != r {
			return false
		}
	}
	return true
}

// accept is peek, but advances the cursor past literal on success.
func (s *Scanner) accept(literal string) bool {
	if !s.peek(literal) {
		return false
	}
	s.cursor += len([]rune(literal))
	return true
}

// acceptChar advances over exactly one character (rune) and returns it. It
// panics if called at EOF; callers must check isEOF first.
func (s *Scanner) acceptChar() string {
	if s.isEOF() {
		panic("emmm: acceptChar at EOF")
	}
	r := s.runes[s.cursor]
	s.cursor++
	return string(r)
}

// acceptWhitespaceChar advances over one non-newline whitespace character,
// returning it, or returns "" without advancing if the next character isn't
// one.
func (s *Scanner) acceptWhitespaceChar() (string, bool) {
	if s.isEOF() {
		return "", false
	}
	r := s.runes[s.cursor]
	if r == '\n' || !isSpace(r) {
		return "", false
	}
	s.cursor++
	return string(r), true
}

// acceptUntil consumes characters up to (not including) the next occurrence
// of literal, which is left unconsumed, and returns the consumed text. If
// EOF is reached before literal is found, it returns the text consumed up to
// EOF with ok=false and leaves the cursor at EOF (the caller treats this as
// "unclosed").
func (s *Scanner) acceptUntil(literal string) (string, bool) {
	start := s.cursor
	for !s.isEOF() {
		if s.peek(literal) {
			return string(s.runes[start:s.cursor]), true
		}
		s.cursor++
	}
	return string(s.runes[start:]), false
}

// rewind resets the cursor to a previously observed position. Used by
// lookahead in the parser (e.g. trying several shorthand matches).
func (s *Scanner) rewind(pos int) { s.cursor = pos }

// runeAt looks offset runes past the cursor without advancing it, returning
// ok=false past the end of input.
func (s *Scanner) runeAt(offset int) (rune, bool) {
	i := s.cursor + offset
	if i < 0 || i >= len(s.runes) {
		return 0, false
	}
	return s.runes[i], true
}

// atLineStart reports whether the cursor is at the beginning of the source
// or immediately after a newline.
func (s *Scanner) atLineStart() bool {
	if s.cursor == 0 {
		return true
	}
	return s.runes[s.cursor-1] == '\n'
}

// atBlankLine reports whether the cursor is at EOF or at a newline that
// either ends the input or is immediately followed by another newline (an
// empty line) — the condition that ends both paragraphs and preformatted
// content.
func (s *Scanner) atBlankLine() bool {
	if s.isEOF() {
		return true
	}
	if !s.peek("\n") {
		return false
	}
	next, ok := s.runeAt(1)
	return !ok || next == '\n'
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}
