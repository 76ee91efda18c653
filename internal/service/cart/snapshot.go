package cart

import (
	"encoding/json"
	"fmt"

	"cafe-storefront/internal/domain"
)

const snapshotVersion = 1

// snapshot is the durable form of a cart. Version 1 is a wrapped envelope;
// the pre-versioned form was a bare item array and still decodes.
type snapshot struct {
	Version int               `json:"version"`
	Items   []domain.CartItem `json:"items"`
}

func encodeSnapshot(items []domain.CartItem) ([]byte, error) {
	return json.Marshal(snapshot{Version: snapshotVersion, Items: items})
}

func decodeSnapshot(data []byte) ([]domain.CartItem, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err == nil && snap.Version >= 1 {
		return sanitizeItems(snap.Items), nil
	}

	// Legacy form: a bare JSON array.
	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return sanitizeItems(items), nil
}

// sanitizeItems drops lines a valid cart can never contain.
func sanitizeItems(items []domain.CartItem) []domain.CartItem {
	out := items[:0]
	for _, item := range items {
		if item.ID == "" || item.Quantity < 1 {
			continue
		}
		out = append(out, item)
	}
	return out
}
