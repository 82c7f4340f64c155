package adapter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dom/poe-uniques-server/internal/domain"
)

// oddsRow is one entry of an Ancient Orb odds snapshot file. Numeric fields
// arrive as numbers or numeric strings depending on how the snapshot was
// produced, so they stay raw until parsing.
type oddsRow struct {
	Name    string          `json:"name"`
	Tier    json.RawMessage `json:"tier"`
	Chance  json.RawMessage `json:"chance"`
	AvgOrbs json.RawMessage `json:"avg_orbs"`
	MinIlvl json.RawMessage `json:"min_ilvl"`
	Source  string          `json:"source"`
}

// ParseOddsFile converts an odds snapshot (a JSON array) into canonical
// records. Rows without a name are dropped and counted as malformed.
// Chance values are kept as-received: the snapshot publishes percentages
// in [0, 100], which is the canonical unit for OddsMeta.Chance.
func ParseOddsFile(data []byte) ([]domain.RawRecord, int, error) {
	var rows []oddsRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, 0, fmt.Errorf("decoding odds snapshot: %w", err)
	}

	records := make([]domain.RawRecord, 0, len(rows))
	malformed := 0
	for _, row := range rows {
		name := domain.NormalizeName(row.Name)
		if name == "" {
			malformed++
			continue
		}

		records = append(records, domain.RawRecord{
			UniqueName: name,
			Odds: &domain.OddsSnapshot{
				Tier:    parseOptionalInt(row.Tier),
				Chance:  parseOptionalFloat(row.Chance),
				AvgOrbs: parseOptionalInt(row.AvgOrbs),
				MinIlvl: parseOptionalInt(row.MinIlvl),
				Source:  strings.TrimSpace(row.Source),
			},
		})
	}

	return records, malformed, nil
}

func parseOptionalFloat(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%")), 64)
		if err != nil {
			return nil
		}
		f = parsed
	}
	return &f
}

func parseOptionalInt(raw json.RawMessage) *int {
	f := parseOptionalFloat(raw)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}
