package adapter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dom/poe-uniques-server/internal/domain"
	"gorm.io/datatypes"
)

// ninjaLine is one row of a poe.ninja itemoverview document. The mod and
// flavour fields vary between a string and a list of nullable strings
// depending on the category, so they stay raw until joinLines.
type ninjaLine struct {
	ID            *int64          `json:"id"`
	Name          string          `json:"name"`
	BaseType      string          `json:"baseType"`
	TypeLine      string          `json:"typeLine"`
	Icon          string          `json:"icon"`
	LevelRequired json.RawMessage `json:"levelRequired"`
	ImplicitMods  json.RawMessage `json:"implicitMods"`
	ExplicitMods  json.RawMessage `json:"explicitMods"`
	FlavourText   json.RawMessage `json:"flavourText"`
	ChaosValue    *float64        `json:"chaosValue"`
	DivineValue   *float64        `json:"divineValue"`
	ListingCount  *int            `json:"listingCount"`
	Sparkline     json.RawMessage `json:"sparkline"`
}

type ninjaPayload struct {
	Lines []ninjaLine `json:"lines"`
}

// ParseNinjaPayload converts one itemoverview document into canonical
// records. The category key (e.g. "UniqueArmour") supplies the class hint.
// Rows missing a name or base type are dropped and counted as malformed.
func ParseNinjaPayload(data []byte, category string) ([]domain.RawRecord, int, error) {
	var payload ninjaPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, 0, fmt.Errorf("decoding itemoverview payload: %w", err)
	}

	class := classForCategory(category)

	records := make([]domain.RawRecord, 0, len(payload.Lines))
	malformed := 0
	for _, line := range payload.Lines {
		uniqueName := domain.NormalizeName(line.Name)
		baseName := domain.NormalizeName(line.BaseType)
		if baseName == "" {
			baseName = domain.NormalizeName(line.TypeLine)
		}
		if uniqueName == "" || baseName == "" {
			malformed++
			continue
		}

		implicit := joinLines(line.ImplicitMods)
		explicit := joinLines(line.ExplicitMods)
		mods := implicit
		if implicit != "" && explicit != "" {
			mods = implicit + "\n" + explicit
		} else if explicit != "" {
			mods = explicit
		}

		rec := domain.RawRecord{
			UniqueName:    uniqueName,
			BaseName:      baseName,
			ClassHint:     class,
			SlotHint:      slotForBase(class, baseName),
			ExternalID:    line.ID,
			RequiredLevel: parseRequiredLevel(line.LevelRequired),
			ImageURL:      strings.TrimSpace(line.Icon),
			ModsText:      mods,
			FlavourText:   joinLines(line.FlavourText),
			Market: &domain.MarketSnapshot{
				ChaosValue:   line.ChaosValue,
				DivineValue:  line.DivineValue,
				ListingCount: line.ListingCount,
			},
		}
		if len(line.Sparkline) > 0 {
			rec.Market.Sparkline = datatypes.JSON(line.Sparkline)
		}
		records = append(records, rec)
	}

	return records, malformed, nil
}

// joinLines handles the feed's two shapes for text fields: a plain string,
// or a list of lines with possible nulls. Lists are joined with newlines
// after dropping null and empty entries.
func joinLines(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var lines []*string
	if err := json.Unmarshal(raw, &lines); err == nil {
		parts := make([]string, 0, len(lines))
		for _, l := range lines {
			if l == nil {
				continue
			}
			if s := strings.TrimSpace(*l); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return ""
}

// parseRequiredLevel parses defensively: numbers and numeric strings are
// accepted, anything else (including negatives) resolves to absent.
func parseRequiredLevel(raw json.RawMessage) *int {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		f = parsed
	}

	n := int(f)
	if n < 0 {
		return nil
	}
	return &n
}

func classForCategory(category string) domain.ItemClass {
	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "armour"):
		return domain.ClassArmour
	case strings.Contains(c, "weapon"):
		return domain.ClassWeapon
	case strings.Contains(c, "accessory"):
		return domain.ClassAccessory
	case strings.Contains(c, "jewel"):
		return domain.ClassJewel
	case strings.Contains(c, "flask"):
		return domain.ClassFlask
	}
	return ""
}

// slotForBase infers the equipment slot from the base name. Armour bases
// without a recognizable keyword default to body; other classes map
// directly or stay unset.
func slotForBase(class domain.ItemClass, baseName string) domain.Slot {
	base := strings.ToLower(baseName)

	switch class {
	case domain.ClassArmour:
		switch {
		case strings.Contains(base, "boots"):
			return domain.SlotBoots
		case strings.Contains(base, "gloves"), strings.Contains(base, "gauntlets"):
			return domain.SlotGloves
		case strings.Contains(base, "helmet"), strings.Contains(base, "helm"), strings.Contains(base, "hood"):
			return domain.SlotHelmet
		case strings.Contains(base, "shield"):
			return domain.SlotShield
		}
		return domain.SlotBody
	case domain.ClassAccessory:
		switch {
		case strings.Contains(base, "belt"), strings.Contains(base, "sash"):
			return domain.SlotBelt
		case strings.Contains(base, "ring"):
			return domain.SlotRing
		case strings.Contains(base, "amulet"), strings.Contains(base, "talisman"):
			return domain.SlotAmulet
		}
		return ""
	case domain.ClassWeapon:
		return domain.SlotWeapon
	case domain.ClassJewel:
		return domain.SlotJewel
	case domain.ClassFlask:
		return domain.SlotFlask
	}
	return ""
}
