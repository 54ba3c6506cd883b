package calls

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes; they start at 1 to avoid a clash with parsly.EOF.
const (
	whitespaceCode = iota + 1
	identifierCode
	dotCode
	openParenCode
	closeParenCode
	commaCode
	variableCode
	numberCode
	stringCode
)

// Token definitions
var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	identifierToken = parsly.NewToken(identifierCode, "Identifier", newIdentifierMatcher())
	dotToken        = parsly.NewToken(dotCode, ".", matcher.NewByte('.'))
	openParenToken  = parsly.NewToken(openParenCode, "(", matcher.NewByte('('))
	closeParenToken = parsly.NewToken(closeParenCode, ")", matcher.NewByte(')'))
	commaToken      = parsly.NewToken(commaCode, ",", matcher.NewByte(','))
	variableToken   = parsly.NewToken(variableCode, "Variable", newVariableMatcher())
	numberToken     = parsly.NewToken(numberCode, "Number", newNumberMatcher())
	stringToken     = parsly.NewToken(stringCode, "String", newStringMatcher())
)

// Custom matchers
func newIdentifierMatcher() parsly.Matcher {
	return &identifierMatcher{}
}

func newVariableMatcher() parsly.Matcher {
	return &variableMatcher{}
}

func newNumberMatcher() parsly.Matcher {
	return &numberMatcher{}
}

func newStringMatcher() parsly.Matcher {
	return &stringMatcher{}
}

// identifierMatcher matches identifier names
type identifierMatcher struct{}

func (m *identifierMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos >= size {
		return 0
	}
	if !isLetter(input[pos]) && input[pos] != '_' {
		return 0
	}
	matched := 1
	for i := pos + 1; i < size; i++ {
		if isLetter(input[i]) || isDigit(input[i]) || input[i] == '_' {
			matched++
			continue
		}
		break
	}
	return matched
}

// variableMatcher matches scope references such as $total or $exec.stdout.
// A dot is part of the variable only when an identifier follows it.
type variableMatcher struct{}

func (m *variableMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos >= size || input[pos] != '$' {
		return 0
	}
	i := pos + 1
	if i >= size || (!isLetter(input[i]) && input[i] != '_') {
		return 0
	}
	for i < size {
		switch {
		case isLetter(input[i]) || isDigit(input[i]) || input[i] == '_':
			i++
		case input[i] == '.' && i+1 < size && (isLetter(input[i+1]) || input[i+1] == '_'):
			i++
		default:
			return i - pos
		}
	}
	return i - pos
}

// numberMatcher matches integer and decimal literals with an optional
// leading minus. The fraction dot counts only when digits follow it.
type numberMatcher struct{}

func (m *numberMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	i := pos
	if i < size && input[i] == '-' {
		i++
	}
	digits := 0
	for i < size && isDigit(input[i]) {
		i++
		digits++
	}
	if digits == 0 {
		return 0
	}
	if i+1 < size && input[i] == '.' && isDigit(input[i+1]) {
		i++
		for i < size && isDigit(input[i]) {
			i++
		}
	}
	return i - pos
}

// stringMatcher matches single or double quoted literals with backslash
// escapes; an unterminated literal does not match.
type stringMatcher struct{}

func (m *stringMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos >= size {
		return 0
	}
	quote := input[pos]
	if quote != '"' && quote != '\'' {
		return 0
	}
	for i := pos + 1; i < size; i++ {
		switch input[i] {
		case '\\':
			i++
		case quote:
			return i - pos + 1
		}
	}
	return 0
}

// Helper functions
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
