package event

import "encoding/json"

// DecodePayload converts an event payload to T. Payloads published through
// the in-process MemoryBus are already the right struct and hit the type
// assertion; anything that arrived serialized falls back to a JSON
// round-trip.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
