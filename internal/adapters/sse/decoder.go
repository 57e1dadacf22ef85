package sse

import "encoding/json"

// JSONDecoder returns a Decoder that unmarshals each payload into a T. The decoded value is
// stored in StreamEvent.Parsed as a T.
func JSONDecoder[T any]() Decoder {
	return func(raw string) (any, error) {
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
