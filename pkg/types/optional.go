package types

import (
	"bytes"
	"encoding/json"
)

// Optional is a patch field for nullable values. The zero value leaves the
// stored value alone; Set with a nil Value clears it.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns an Optional that sets v.
func Some[T any](v T) Optional[T] { return Optional[T]{Set: true, Value: &v} }

// Null returns an Optional that clears the stored value.
func Null[T any]() Optional[T] { return Optional[T]{Set: true} }

// UnmarshalJSON marks the field as set. JSON null clears it.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// apply merges o into dst.
func (o Optional[T]) apply(dst **T) {
	if !o.Set {
		return
	}
	if o.Value == nil {
		*dst = nil
		return
	}
	v := *o.Value
	*dst = &v
}
