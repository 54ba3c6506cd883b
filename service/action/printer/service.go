package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/viant/funcly/model/types"
)

const name = "printer"

// Service prints messages to an output stream
type Service struct {
	// Writer receives the printed lines; defaults to standard output
	Writer io.Writer
}

type Input struct {
	Message string
}

// Output represents print output
type Output struct {
}

// New creates a new printer service
func New() *Service {
	return &Service{Writer: os.Stdout}
}

// Name returns the service name
func (s *Service) Name() string {
	return name
}

// Methods returns the service methods
func (s *Service) Methods() types.Methods {
	return []types.Method{
		{
			Name:        "print",
			Description: "Prints the given message to the output stream.",
			Input:       reflect.TypeOf(&Input{}),
			Output:      reflect.TypeOf(&Output{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "print":
		return s.print, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

func (s *Service) print(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*Input)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	fmt.Fprintln(s.Writer, input.Message)
	return nil
}
