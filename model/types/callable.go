package types

import (
	"context"

	"github.com/viant/funcly/model/value"
)

// Callable is the uniform, type-erased form every registered function is
// reduced to. Arguments arrive packed as values, the result comes back as
// a value; procedures return a void value. A Callable must be safe to
// invoke concurrently.
type Callable func(ctx context.Context, args []value.Value) (value.Value, error)
