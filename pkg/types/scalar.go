package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Scalar принимает из JSON как число, так и строку и хранит исходный текст.
// Разбор значения выполняет вызывающая сторона.
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("types: expected number or string, got %s", data)
	}
	*s = Scalar(num.String())
	return nil
}

func (s Scalar) String() string {
	return string(s)
}

// IsEmpty возвращает true, если значение не передано
func (s Scalar) IsEmpty() bool {
	return s == ""
}
