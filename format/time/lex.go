package time

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceToken = iota
	numberToken
	wordToken
	symbolToken
)

var (
	whitespaceMatcher = parsly.NewToken(whitespaceToken, " ", matcher.NewWhiteSpace())
	numberMatcher     = parsly.NewToken(numberToken, "number", &digits{})
	wordMatcher       = parsly.NewToken(wordToken, "word", &letters{})
	symbolMatcher     = parsly.NewToken(symbolToken, "symbol", &symbol{})
)

type digits struct{}

func (d *digits) Match(cursor *parsly.Cursor) int {
	matched := 0
	for _, c := range cursor.Input[cursor.Pos:] {
		if c < '0' || c > '9' {
			break
		}
		matched++
	}
	return matched
}

type letters struct{}

func (l *letters) Match(cursor *parsly.Cursor) int {
	matched := 0
	for _, c := range cursor.Input[cursor.Pos:] {
		if !isLetter(c) {
			break
		}
		matched++
	}
	return matched
}

// symbol matches any single remaining byte
type symbol struct{}

func (s *symbol) Match(cursor *parsly.Cursor) int {
	if cursor.Pos < len(cursor.Input) {
		return 1
	}
	return 0
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

type token struct {
	code int
	text string
}

// tokenize splits value into numbers, words and single byte symbols; runs of
// whitespace collapse into one whitespace token.
func tokenize(value string) []token {
	cursor := parsly.NewCursor("", []byte(value), 0)
	var tokens []token
	for cursor.Pos < len(cursor.Input) {
		match := cursor.MatchAny(whitespaceMatcher, numberMatcher, wordMatcher, symbolMatcher)
		switch match.Code {
		case whitespaceToken, numberToken, wordToken, symbolToken:
			tokens = append(tokens, token{code: match.Code, text: match.Text(cursor)})
		default:
			return tokens
		}
	}
	return tokens
}
