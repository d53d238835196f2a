package patch

import "encoding/json"

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Optional patches a nullable field: set=false keeps current, set=true with nil value clears it.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o Optional[T]) ApplyTo(current *T) *T {
	if !o.Set {
		return current
	}
	return o.Value
}

// UnmarshalJSON only runs when the key is present, so an explicit null clears.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
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
