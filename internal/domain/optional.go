package domain

import (
	"bytes"
	"encoding/json"
)

// Optional representa un campo que puede venir ausente en el payload.
// null, la clave ausente y, para strings, el valor "" se decodifican como ausente.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some construye un Optional presente.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None construye un Optional ausente.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get devuelve el valor y si esta presente.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSet indica si el valor esta presente.
func (o Optional[T]) IsSet() bool {
	return o.ok
}

// OrElse devuelve el valor o fallback si esta ausente.
func (o Optional[T]) OrElse(fallback T) T {
	if !o.ok {
		return fallback
	}
	return o.value
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if s, isString := any(v).(string); isString && s == "" {
		*o = Optional[T]{}
		return nil
	}
	*o = Optional[T]{value: v, ok: true}
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// OptionalString convierte un string vacio en ausente. Util al leer columnas de la base.
func OptionalString(s string) Optional[string] {
	if s == "" {
		return None[string]()
	}
	return Some(s)
}

// OptionalStringPtr convierte un *string (columna nullable) en Optional.
func OptionalStringPtr(s *string) Optional[string] {
	if s == nil {
		return None[string]()
	}
	return OptionalString(*s)
}
