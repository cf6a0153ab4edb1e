package config

import (
	"encoding/json"
	"fmt"
)

// serializedConfiguration wraps a Configuration with a format version so a
// browser worker holding an older snapshot is rejected instead of misread.
type serializedConfiguration struct {
	Version       int            `json:"version"`
	Configuration *Configuration `json:"configuration"`
}

const serializationVersion = 1

// Serialize converts a Configuration to JSON for transfer between the wasm
// form and its workers, or for session snapshots.
func Serialize(cfg *Configuration) (string, error) {
	if cfg == nil {
		return "", ErrNoConfiguration
	}
	data, err := json.Marshal(serializedConfiguration{Version: serializationVersion, Configuration: cfg})
	if err != nil {
		return "", fmt.Errorf("serialize configuration: %w", err)
	}
	return string(data), nil
}

// Deserialize reconstructs a Configuration from Serialize output.
func Deserialize(data []byte) (*Configuration, error) {
	var sc serializedConfiguration
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("deserialize configuration: %w", err)
	}
	if sc.Version != serializationVersion {
		return nil, fmt.Errorf("deserialize configuration: unsupported version %d", sc.Version)
	}
	if sc.Configuration == nil {
		return nil, ErrNoConfiguration
	}
	if sc.Configuration.Groups == nil {
		sc.Configuration.Groups = make(map[string]string)
	}
	return sc.Configuration, nil
}
