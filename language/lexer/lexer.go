package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sprucehealth/gqlast/gqlerrors"
	"github.com/sprucehealth/gqlast/language/source"
)

// Kind identifies the type of a lexed token.
type Kind int

const (
	EOF Kind = iota + 1
	BANG
	DOLLAR
	AMP
	PAREN_L
	PAREN_R
	SPREAD
	COLON
	EQUALS
	AT
	BRACKET_L
	BRACKET_R
	BRACE_L
	PIPE
	BRACE_R
	NAME
	INT
	FLOAT
	STRING
	BLOCK_STRING
	COMMENT
)

var tokenDescription = map[Kind]string{
	EOF:          "EOF",
	BANG:         "!",
	DOLLAR:       "$",
	AMP:          "&",
	PAREN_L:      "(",
	PAREN_R:      ")",
	SPREAD:       "...",
	COLON:        ":",
	EQUALS:       "=",
	AT:           "@",
	BRACKET_L:    "[",
	BRACKET_R:    "]",
	BRACE_L:      "{",
	PIPE:         "|",
	BRACE_R:      "}",
	NAME:         "Name",
	INT:          "Int",
	FLOAT:        "Float",
	STRING:       "String",
	BLOCK_STRING: "BlockString",
	COMMENT:      "Comment",
}

func (k Kind) String() string {
	return tokenDescription[k]
}

// Token is a representation of a lexed Token. Start and End are byte offsets
// into the source body. Value only appears for non-punctuation tokens: NAME,
// INT, FLOAT, STRING, BLOCK_STRING (decoded) and COMMENT.
type Token struct {
	Kind  Kind
	Start int
	End   int
	Value string
}

func (t Token) String() string {
	return GetTokenDesc(t)
}

type Lexer struct {
	src    *source.Source
	body   string
	offset int // byte offset of ch
	rd     int // byte offset of the next rune
	ch     rune
}

func New(s *source.Source) *Lexer {
	lex := &Lexer{
		src:  s,
		body: s.Body(),
	}
	lex.nextRune()
	return lex
}

// Source returns the source being tokenized.
func (l *Lexer) Source() *source.Source {
	return l.src
}

// NextToken returns the next token, including comments. Past the end of the
// body it keeps returning EOF.
func (l *Lexer) NextToken() (Token, error) {
	return l.readToken()
}

func (l *Lexer) nextRune() {
	l.offset = l.rd
	if l.rd >= len(l.body) {
		l.ch = 0
		return
	}
	r, w := rune(l.body[l.rd]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRuneInString(l.body[l.rd:])
	}
	l.ch = r
	l.rd += w
}

// peekByte returns the byte n bytes after the current rune or 0.
func (l *Lexer) peekByte(n int) byte {
	if i := l.offset + n; i < len(l.body) {
		return l.body[i]
	}
	return 0
}

func (l *Lexer) eof() bool {
	return l.offset >= len(l.body)
}

// readName reads an alphanumeric + underscore name from the source.
// [_A-Za-z][_0-9A-Za-z]*
func (l *Lexer) readName() (Token, error) {
	start := l.offset
	for !l.eof() && (l.ch == '_' ||
		l.ch >= '0' && l.ch <= '9' ||
		l.ch >= 'A' && l.ch <= 'Z' ||
		l.ch >= 'a' && l.ch <= 'z') {
		l.nextRune()
	}
	return makeToken(NAME, start, l.offset, l.body[start:l.offset]), nil
}

// readNumber reads a number token from the source file, either a float
// or an int depending on whether a decimal point appears.
// Int:   -?(0|[1-9][0-9]*)
// Float: -?(0|[1-9][0-9]*)(\.[0-9]+)?((E|e)(+|-)?[0-9]+)?
func (l *Lexer) readNumber() (Token, error) {
	start := l.offset
	isFloat := false
	if l.ch == '-' {
		l.nextRune()
	}
	if l.ch == '0' {
		l.nextRune()
		if l.ch >= '0' && l.ch <= '9' {
			description := fmt.Sprintf("Invalid number, unexpected digit after 0: %v.", printCharCode(l.ch))
			return Token{}, gqlerrors.NewSyntaxError(l.src, l.offset, description)
		}
	} else if err := l.readDigits(); err != nil {
		return Token{}, err
	}
	if l.ch == '.' {
		isFloat = true
		l.nextRune()
		if err := l.readDigits(); err != nil {
			return Token{}, err
		}
	}
	if l.ch == 'E' || l.ch == 'e' {
		isFloat = true
		l.nextRune()
		if l.ch == '+' || l.ch == '-' {
			l.nextRune()
		}
		if err := l.readDigits(); err != nil {
			return Token{}, err
		}
	}
	kind := INT
	if isFloat {
		kind = FLOAT
	}
	return makeToken(kind, start, l.offset, l.body[start:l.offset]), nil
}

func (l *Lexer) readDigits() error {
	if l.ch < '0' || l.ch > '9' {
		description := "Invalid number, expected digit but got: EOF."
		if !l.eof() {
			description = fmt.Sprintf("Invalid number, expected digit but got: %v.", printCharCode(l.ch))
		}
		return gqlerrors.NewSyntaxError(l.src, l.offset, description)
	}
	for l.ch >= '0' && l.ch <= '9' {
		l.nextRune()
	}
	return nil
}

func (l *Lexer) readString() (Token, error) {
	if l.peekByte(1) == '"' && l.peekByte(2) == '"' {
		return l.readBlockString()
	}
	start := l.offset
	var value strings.Builder
	chunkStart := l.rd
	for {
		l.nextRune()
		if l.eof() || l.ch == '"' || l.ch == '\n' || l.ch == '\r' {
			break
		}
		if l.ch < 0x0020 && l.ch != '\t' {
			return Token{}, gqlerrors.NewSyntaxError(l.src, l.offset, fmt.Sprintf(`Invalid character within String: %v.`, printCharCode(l.ch)))
		}
		if l.ch != '\\' {
			continue
		}
		value.WriteString(l.body[chunkStart:l.offset])
		l.nextRune()
		switch l.ch {
		case '"':
			value.WriteByte('"')
		case '/':
			value.WriteByte('/')
		case '\\':
			value.WriteByte('\\')
		case 'b':
			value.WriteByte('\b')
		case 'f':
			value.WriteByte('\f')
		case 'n':
			value.WriteByte('\n')
		case 'r':
			value.WriteByte('\r')
		case 't':
			value.WriteByte('\t')
		case 'u':
			escStart := l.offset
			var u [4]rune
			for i := range u {
				l.nextRune()
				u[i] = l.ch
			}
			charCode := uniCharCode(u[0], u[1], u[2], u[3])
			if charCode < 0 {
				end := l.rd
				if end > len(l.body) {
					end = len(l.body)
				}
				return Token{}, gqlerrors.NewSyntaxError(l.src, escStart-1, fmt.Sprintf(`Invalid character escape sequence: \%s.`, l.body[escStart:end]))
			}
			value.WriteRune(charCode)
		default:
			return Token{}, gqlerrors.NewSyntaxError(l.src, l.offset, fmt.Sprintf(`Invalid character escape sequence: \%c.`, l.ch))
		}
		chunkStart = l.rd
	}
	if l.ch != '"' {
		return Token{}, gqlerrors.NewSyntaxError(l.src, l.offset, "Unterminated string.")
	}
	value.WriteString(l.body[chunkStart:l.offset])
	l.nextRune()
	return makeToken(STRING, start, l.offset, value.String()), nil
}

// readBlockString reads a triple quoted string. The raw text is dedented per
// BlockStringValue and only \""" is treated as an escape.
func (l *Lexer) readBlockString() (Token, error) {
	start := l.offset
	l.nextRune()
	l.nextRune()
	l.nextRune()
	var raw strings.Builder
	chunkStart := l.offset
	for !l.eof() {
		if l.ch == '"' && l.peekByte(1) == '"' && l.peekByte(2) == '"' {
			raw.WriteString(l.body[chunkStart:l.offset])
			l.nextRune()
			l.nextRune()
			l.nextRune()
			return makeToken(BLOCK_STRING, start, l.offset, BlockStringValue(raw.String())), nil
		}
		if l.ch < 0x0020 && l.ch != '\t' && l.ch != '\n' && l.ch != '\r' {
			return Token{}, gqlerrors.NewSyntaxError(l.src, l.offset, fmt.Sprintf(`Invalid character within String: %v.`, printCharCode(l.ch)))
		}
		if l.ch == '\\' && l.peekByte(1) == '"' && l.peekByte(2) == '"' && l.peekByte(3) == '"' {
			raw.WriteString(l.body[chunkStart:l.offset])
			raw.WriteString(`"""`)
			for i := 0; i < 4; i++ {
				l.nextRune()
			}
			chunkStart = l.offset
			continue
		}
		l.nextRune()
	}
	return Token{}, gqlerrors.NewSyntaxError(l.src, l.offset, "Unterminated string.")
}

// BlockStringValue removes the common indentation and the leading and
// trailing blank lines from the raw contents of a block string.
func BlockStringValue(raw string) string {
	lines := splitLines(raw)
	common := -1
	for _, line := range lines[1:] {
		indent := leadingWhitespace(line)
		if indent == len(line) {
			continue
		}
		if common < 0 || indent < common {
			common = indent
		}
	}
	if common > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= common {
				lines[i] = lines[i][common:]
			} else {
				lines[i] = ""
			}
		}
	}
	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func leadingWhitespace(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

func isBlank(s string) bool {
	return leadingWhitespace(s) == len(s)
}

// Converts four hexidecimal chars to the integer that the
// string represents. For example, uniCharCode('0','0','0','f')
// will return 15, and uniCharCode('0','0','f','f') returns 255.
// Returns a negative number on error, if a char was invalid.
func uniCharCode(a, b, c, d rune) rune {
	return rune(char2hex(a)<<12 | char2hex(b)<<8 | char2hex(c)<<4 | char2hex(d))
}

// Converts a hex character to its integer value.
// Returns -1 on error.
func char2hex(a rune) int {
	switch {
	case a >= '0' && a <= '9':
		return int(a) - '0'
	case a >= 'A' && a <= 'F':
		return int(a) + 10 - 'A'
	case a >= 'a' && a <= 'f':
		return int(a) + 10 - 'a'
	}
	return -1
}

func makeToken(kind Kind, start, end int, value string) Token {
	return Token{Kind: kind, Start: start, End: end, Value: value}
}

func printCharCode(code rune) string {
	// print as ASCII for printable range
	if code >= 0x0020 && code < 0x007F {
		return fmt.Sprintf(`"%c"`, code)
	}
	// Otherwise print the escaped form. e.g. `"\\u0007"`
	return fmt.Sprintf(`"\\u%04X"`, code)
}

var punctuation = map[rune]Kind{
	'!': BANG,
	'$': DOLLAR,
	'&': AMP,
	'(': PAREN_L,
	')': PAREN_R,
	':': COLON,
	'=': EQUALS,
	'@': AT,
	'[': BRACKET_L,
	']': BRACKET_R,
	'{': BRACE_L,
	'|': PIPE,
	'}': BRACE_R,
}

func (l *Lexer) readToken() (Token, error) {
	l.skipWhitespace()
	if l.eof() {
		return makeToken(EOF, len(l.body), len(l.body), ""), nil
	}
	// SourceCharacter
	if l.ch < 0x0020 && l.ch != '\t' && l.ch != '\n' && l.ch != '\r' {
		return Token{}, gqlerrors.NewSyntaxError(l.src, l.offset, fmt.Sprintf(`Invalid character %v`, printCharCode(l.ch)))
	}
	start := l.offset
	ch := l.ch
	switch {
	case isLetter(ch):
		return l.readName()
	case isDigit(ch) || ch == '-':
		return l.readNumber()
	case ch == '"':
		return l.readString()
	}
	l.nextRune() // always make progress
	if kind, ok := punctuation[ch]; ok {
		return makeToken(kind, start, l.offset, ""), nil
	}
	switch ch {
	case '.':
		if l.ch == '.' && l.peekByte(1) == '.' {
			l.nextRune()
			l.nextRune()
			return makeToken(SPREAD, start, l.offset, ""), nil
		}
	case '#':
		for !l.eof() && l.ch != '\n' && l.ch != '\r' {
			l.nextRune()
		}
		return makeToken(COMMENT, start, l.offset, strings.TrimSpace(l.body[start:l.offset])), nil
	}
	description := fmt.Sprintf("Unexpected character %v.", printCharCode(ch))
	return Token{}, gqlerrors.NewSyntaxError(l.src, start, description)
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9' || ch >= utf8.RuneSelf && unicode.IsDigit(ch)
}

// skipWhitespace advances past whitespace, commas and the byte order mark.
func (l *Lexer) skipWhitespace() {
	for !l.eof() {
		switch l.ch {
		case 0xFEFF, ' ', ',', '\n', '\r', '\t':
		default:
			return
		}
		l.nextRune()
	}
}

func GetTokenDesc(token Token) string {
	if token.Value == "" {
		return GetTokenKindDesc(token.Kind)
	}
	return fmt.Sprintf("%s %q", GetTokenKindDesc(token.Kind), token.Value)
}

func GetTokenKindDesc(kind Kind) string {
	return tokenDescription[kind]
}
