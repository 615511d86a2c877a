package service

import "encoding/json"

// Optional distinguishes a JSON field that was absent from one that
// was explicitly set, including set to null. With T a pointer type,
// Set=true and a nil Value means the field was cleared.
type Optional[T any] struct {
	Set   bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Value)
}
