package types

import "encoding/json"

// Optional distinguishes a JSON field that was absent from one that was set
// to an explicit null. The zero value means the field was not present; Set
// with a nil Value means the client asked to clear it.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// OptionalOf builds a present Optional holding value.
func OptionalOf[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Value: &value}
}

// OptionalNull builds a present Optional carrying an explicit null.
func OptionalNull[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	o.Value = &value
	return nil
}
