// Package calls parses plan call expressions with the
// github.com/viant/parsly tokenizer. An expression invokes a registered
// function by its plain or group-qualified name with literal and variable
// arguments, i.e. math.add(15, $base) or strings.concat("Hello, ", $who).
package calls

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/parsly"

	"github.com/viant/funcly/model/value"
)

// Call is a parsed call expression
type Call struct {
	Name string
	Args []*Arg
}

// Arg is a single call argument: either a literal already packed as a
// value, or a reference to a scope variable resolved at run time.
type Arg struct {
	Value    value.Value
	Variable string
}

// IsVariable reports whether the argument is a scope reference
func (a *Arg) IsVariable() bool {
	return a.Variable != ""
}

// String renders the argument in expression form
func (a *Arg) String() string {
	if a.IsVariable() {
		return "$" + a.Variable
	}
	switch a.Value.Kind() {
	case value.KindString:
		text, _ := a.Value.AsString()
		return strconv.Quote(text)
	case value.KindVoid:
		return "null"
	}
	return fmt.Sprintf("%v", a.Value.Interface())
}

// String renders the call in expression form
func (c *Call) String() string {
	args := make([]string, 0, len(c.Args))
	for _, arg := range c.Args {
		args = append(args, arg.String())
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// Parse parses a call expression in the format: name(arg, ...) where name
// may be dot-qualified and every argument is an integer, decimal, quoted
// string, boolean or null literal, or a $variable reference.
func Parse(input []byte) (*Call, error) {
	cursor := parsly.NewCursor("", input, 0)
	call := &Call{}

	// Match the plain or dot-qualified function name
	matched := cursor.MatchAfterOptional(whitespaceToken, identifierToken)
	if matched.Code != identifierToken.Code {
		return nil, cursor.NewError(identifierToken)
	}
	name := matched.Text(cursor)
	for {
		matched = cursor.MatchOne(dotToken)
		if matched.Code != dotToken.Code {
			break
		}
		matched = cursor.MatchOne(identifierToken)
		if matched.Code != identifierToken.Code {
			return nil, cursor.NewError(identifierToken)
		}
		name += "." + matched.Text(cursor)
	}
	call.Name = name

	// Match the opening parenthesis
	matched = cursor.MatchAfterOptional(whitespaceToken, openParenToken)
	if matched.Code != openParenToken.Code {
		return nil, cursor.NewError(openParenToken)
	}

	// Match the argument list
	matched = cursor.MatchAfterOptional(whitespaceToken, closeParenToken, variableToken, stringToken, numberToken, identifierToken)
	for matched.Code != closeParenToken.Code {
		arg, err := parseArg(cursor, matched)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		matched = cursor.MatchAfterOptional(whitespaceToken, commaToken, closeParenToken)
		switch matched.Code {
		case closeParenToken.Code:
			continue
		case commaToken.Code:
		default:
			return nil, cursor.NewError(commaToken, closeParenToken)
		}
		matched = cursor.MatchAfterOptional(whitespaceToken, variableToken, stringToken, numberToken, identifierToken)
	}

	// Reject trailing content
	cursor.MatchOne(whitespaceToken)
	if cursor.Pos < cursor.InputSize {
		return nil, fmt.Errorf("unexpected content after call expression: %q", string(cursor.Input[cursor.Pos:]))
	}
	return call, nil
}

func parseArg(cursor *parsly.Cursor, matched *parsly.TokenMatch) (*Arg, error) {
	switch matched.Code {
	case variableToken.Code:
		text := matched.Text(cursor)
		return &Arg{Variable: text[1:]}, nil
	case stringToken.Code:
		text, err := unquote(matched.Text(cursor))
		if err != nil {
			return nil, err
		}
		return &Arg{Value: value.String(text)}, nil
	case numberToken.Code:
		text := matched.Text(cursor)
		if strings.Contains(text, ".") {
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number literal %q: %w", text, err)
			}
			return &Arg{Value: value.Float(f)}, nil
		}
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer literal %q: %w", text, err)
		}
		return &Arg{Value: value.Int(i)}, nil
	case identifierToken.Code:
		switch text := matched.Text(cursor); text {
		case "true":
			return &Arg{Value: value.Bool(true)}, nil
		case "false":
			return &Arg{Value: value.Bool(false)}, nil
		case "null":
			return &Arg{Value: value.Void()}, nil
		default:
			return nil, fmt.Errorf("unexpected token %q: arguments must be literals or $variables", text)
		}
	}
	return nil, cursor.NewError(variableToken, stringToken, numberToken, identifierToken)
}

// unquote strips the surrounding quotes and resolves backslash escapes
func unquote(text string) (string, error) {
	if len(text) < 2 {
		return "", fmt.Errorf("invalid string literal %q", text)
	}
	body := text[1 : len(text)-1]
	if !strings.Contains(body, "\\") {
		return body, nil
	}
	b := strings.Builder{}
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("dangling escape in string literal %q", text)
		}
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\', '\'', '"':
			b.WriteByte(body[i])
		default:
			return "", fmt.Errorf("unsupported escape \\%c in string literal %q", body[i], text)
		}
	}
	return b.String(), nil
}
