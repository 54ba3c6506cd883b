package types

import (
	"reflect"
	"strings"
)

type Signatures []Signature

func (s Signatures) Lookup(name string) *Signature {
	for i := range s {
		sig := &s[i]
		if sig.Name == name {
			return sig
		}
	}
	return nil
}

// Signature	registered function signature
type Signature struct {
	Name   string
	Args   []reflect.Type
	Result reflect.Type
}

// Arity returns the number of declared arguments
func (s *Signature) Arity() int {
	return len(s.Args)
}

// Void reports whether the function produces no result
func (s *Signature) Void() bool {
	return s.Result == nil
}

// String renders the signature, i.e. add(int64, int64) int64
func (s *Signature) String() string {
	builder := strings.Builder{}
	builder.WriteString(s.Name)
	builder.WriteByte('(')
	for i, arg := range s.Args {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(arg.String())
	}
	builder.WriteByte(')')
	if s.Result != nil {
		builder.WriteByte(' ')
		builder.WriteString(s.Result.String())
	}
	return builder.String()
}
