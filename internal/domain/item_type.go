package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItemType is the base item a unique rolls on, e.g. "Glorious Plate".
// Identity is (name, class); class/slot only ever move from generic to
// specific, never back.
type ItemType struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex:idx_item_types_name_class"`
	Class     ItemClass `json:"class" gorm:"not null;default:'other';uniqueIndex:idx_item_types_name_class"`
	Slot      Slot      `json:"slot"` // empty string = not yet known
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ItemClass string

const (
	ClassWeapon    ItemClass = "weapon"
	ClassArmour    ItemClass = "armour"
	ClassAccessory ItemClass = "accessory"
	ClassJewel     ItemClass = "jewel"
	ClassFlask     ItemClass = "flask"
	ClassOther     ItemClass = "other"
)

func ValidItemClass(c ItemClass) bool {
	switch c {
	case ClassWeapon, ClassArmour, ClassAccessory, ClassJewel, ClassFlask, ClassOther:
		return true
	}
	return false
}

type Slot string

const (
	SlotHelmet Slot = "helmet"
	SlotBody   Slot = "body"
	SlotGloves Slot = "gloves"
	SlotBoots  Slot = "boots"
	SlotShield Slot = "shield"
	SlotWeapon Slot = "weapon"
	SlotBelt   Slot = "belt"
	SlotRing   Slot = "ring"
	SlotAmulet Slot = "amulet"
	SlotJewel  Slot = "jewel"
	SlotFlask  Slot = "flask"
	SlotOther  Slot = "other"
)

func ValidSlot(s Slot) bool {
	switch s {
	case SlotHelmet, SlotBody, SlotGloves, SlotBoots, SlotShield, SlotWeapon,
		SlotBelt, SlotRing, SlotAmulet, SlotJewel, SlotFlask, SlotOther:
		return true
	}
	return false
}
