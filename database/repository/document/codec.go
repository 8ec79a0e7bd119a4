package documentRepo

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Encode turns a tagged struct into a Document using its json field names. Going through
// encoding/json writes every time.Time as an RFC3339 string, so Firestore, MongoDB and the
// memory store all hold the same shape and Decode has a single time format to read back.
func Encode(v interface{}) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return doc, nil
}

// Decode fills out from a Document read back from any backend.
func Decode(doc Document, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		),
		Result: out,
	})
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := dec.Decode(map[string]interface{}(doc)); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
