// Package input collects answers from an interactive user. It is mounted
// like any other action service, so a plan step can pause for a free-form
// answer or a yes/no confirmation. Tests substitute the reader and writer
// to avoid a TTY.
package input

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/viant/funcly/model/types"
)

const name = "input"

// Service reads answers from an input stream and writes prompts to an
// output stream
type Service struct {
	in  io.Reader
	out io.Writer
}

// New creates an input service bound to stdin and stdout
func New() *Service {
	return &Service{in: os.Stdin, out: os.Stdout}
}

// NewWithIO creates an input service with the supplied streams; nil
// arguments fall back to stdin/stdout
func NewWithIO(in io.Reader, out io.Writer) *Service {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Service{in: in, out: out}
}

// AskInput prompts for a free-form answer
type AskInput struct {
	Message string `json:"message,omitempty"`
	// Default is used when the user answers with an empty line
	Default string `json:"default,omitempty"`
}

// AskOutput holds the user's answer
type AskOutput struct {
	Text string `json:"text,omitempty"`
}

// ConfirmInput prompts for a yes/no decision
type ConfirmInput struct {
	Message string `json:"message,omitempty"`
	// Default is used when the user answers with an empty line
	Default bool `json:"default,omitempty"`
}

// ConfirmOutput holds the user's decision
type ConfirmOutput struct {
	Approved bool `json:"approved"`
}

// Name returns the service name
func (s *Service) Name() string {
	return name
}

// Methods returns the service methods
func (s *Service) Methods() types.Methods {
	return []types.Method{
		{
			Name:        "ask",
			Description: "Prompts the user for a free-form answer, falling back to a default on empty input.",
			Input:       reflect.TypeOf(&AskInput{}),
			Output:      reflect.TypeOf(&AskOutput{}),
		},
		{
			Name:        "confirm",
			Description: "Prompts the user for a yes/no decision.",
			Input:       reflect.TypeOf(&ConfirmInput{}),
			Output:      reflect.TypeOf(&ConfirmOutput{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "ask":
		return s.ask, nil
	case "confirm":
		return s.confirm, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

func (s *Service) ask(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*AskInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*AskOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	answer, err := s.prompt(input.Message)
	if err != nil {
		return err
	}
	if answer == "" {
		answer = input.Default
	}
	output.Text = answer
	return nil
}

func (s *Service) confirm(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*ConfirmInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ConfirmOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	suffix := "[y/N]"
	if input.Default {
		suffix = "[Y/n]"
	}
	answer, err := s.prompt(strings.TrimSpace(input.Message) + " " + suffix)
	if err != nil {
		return err
	}
	switch strings.ToLower(answer) {
	case "":
		output.Approved = input.Default
	case "y", "yes":
		output.Approved = true
	default:
		output.Approved = false
	}
	return nil
}

// prompt writes the message and reads a single trimmed line; EOF counts
// as an empty answer
func (s *Service) prompt(message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		message = "?"
	}
	fmt.Fprint(s.out, message+" ")
	line, err := bufio.NewReader(s.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
