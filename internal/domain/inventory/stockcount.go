package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StockCount is a non-negative stock quantity. Clients submit quantities both
// as JSON numbers and as numeric strings ("100"), so unmarshalling accepts
// either form.
type StockCount int

func (s *StockCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("stock: empty value")
	}

	raw := string(data)
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("stock: %w", err)
		}
		raw = strings.TrimSpace(str)
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("stock %q is not a number", raw)
	}
	if n < 0 {
		return fmt.Errorf("stock must not be negative, got %d", n)
	}

	*s = StockCount(n)
	return nil
}
