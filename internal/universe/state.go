package universe

import (
	"encoding/json"
	"os"
	"time"

	"StockScreener/internal/model"
)

// cacheState is the on-disk snapshot of a cached universe.
type cacheState struct {
	Source    string         `json:"source"`
	Symbols   []model.Symbol `json:"symbols"`
	ExpiresAt time.Time      `json:"expires_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// loadState reads a cached universe from a JSON file. Returns a zero state if
// the file doesn't exist.
func loadState(filePath string) (*cacheState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &cacheState{}, nil
		}
		return nil, err
	}
	var state cacheState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// saveState writes the cached universe to a JSON file.
func saveState(filePath string, state *cacheState) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
