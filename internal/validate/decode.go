package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// decodeStrict parses data as a single JSON document, rejecting duplicate
// object keys — a constraint encoding/json's Unmarshal does not enforce
// (it silently keeps the last occurrence). It is walked with the
// streaming Decoder/Token API rather than Unmarshal for exactly that
// reason; no third-party JSON library in the retrieval pack enforces
// RFC 8259 key uniqueness either, so this is built on the standard
// library by necessity, not convenience.
func decodeStrict(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	// Reject trailing garbage after the first value.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected trailing content after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		// nil, bool, json.Number, string
		return tok, nil
	}
}

func decodeObject(dec *json.Decoder) (map[string]any, error) {
	obj := make(map[string]any)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string object key, got %v", keyTok)
		}
		if _, exists := obj[key]; exists {
			return nil, fmt.Errorf("duplicate object key %q", key)
		}

		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj[key] = val
	}
	// consume closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	var arr []any
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	// consume closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}
