// Package agent holds the A2A agent card served at /.well-known/agent.json.
package agent

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed agent.json
var AgentCardData []byte

var requiredFields = []string{"name", "description", "version", "capabilities", "endpoints"}

var (
	loadOnce sync.Once
	loadErr  error
)

// LoadAgentCard validates the embedded card once and returns the cached result.
func LoadAgentCard() error {
	loadOnce.Do(func() {
		loadErr = validate(AgentCardData)
	})
	return loadErr
}

func validate(data []byte) error {
	var card map[string]json.RawMessage
	if err := json.Unmarshal(data, &card); err != nil {
		return fmt.Errorf("parse agent card: %w", err)
	}
	for _, field := range requiredFields {
		if _, ok := card[field]; !ok {
			return fmt.Errorf("agent card missing %q", field)
		}
	}
	return nil
}
