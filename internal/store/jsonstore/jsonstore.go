package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Read-only seed lists. A seed file is a JSON array of item names; nothing
// is ever written back, session state lives in memory only.

// DemoSeed is the built-in starting inventory used by --demo.
var DemoSeed = []string{"chleb", "bułka", "kiełbasa", "ketchup"}

// LoadSeed reads the names in path. A missing file yields an empty seed.
func LoadSeed(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return names, nil
}

// Demo returns a fresh copy of DemoSeed.
func Demo() []string {
	return append([]string(nil), DemoSeed...)
}
