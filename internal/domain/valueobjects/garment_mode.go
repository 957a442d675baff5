package valueobjects

import (
	"fmt"
	"strings"
)

type GarmentMode string

const (
	ModeMen   GarmentMode = "MEN"
	ModeWomen GarmentMode = "WOMEN"
)

// GarmentModes lists the modes in display order.
var GarmentModes = []GarmentMode{ModeMen, ModeWomen}

type GarmentSlot string

const (
	SlotTop    GarmentSlot = "top"
	SlotBottom GarmentSlot = "bottom"
	SlotDress  GarmentSlot = "dress"
)

// AllSlots is the canonical order garments are sent to the models in.
var AllSlots = []GarmentSlot{SlotTop, SlotBottom, SlotDress}

var modeSlots = map[GarmentMode][]GarmentSlot{
	ModeMen:   {SlotTop, SlotBottom},
	ModeWomen: {SlotTop, SlotBottom, SlotDress},
}

func ParseGarmentMode(s string) (GarmentMode, error) {
	mode := GarmentMode(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := modeSlots[mode]; !ok {
		return "", fmt.Errorf("unknown garment mode %q (want MEN or WOMEN)", s)
	}
	return mode, nil
}

func ParseGarmentSlot(s string) (GarmentSlot, error) {
	slot := GarmentSlot(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllSlots {
		if slot == known {
			return slot, nil
		}
	}
	return "", fmt.Errorf("unknown garment slot %q", s)
}

// Slots returns the asset slots offered under the mode, in canonical order.
func (m GarmentMode) Slots() []GarmentSlot {
	slots := modeSlots[m]
	out := make([]GarmentSlot, len(slots))
	copy(out, slots)
	return out
}

func (m GarmentMode) Allows(slot GarmentSlot) bool {
	for _, s := range modeSlots[m] {
		if s == slot {
			return true
		}
	}
	return false
}

func (m GarmentMode) IsValid() bool {
	_, ok := modeSlots[m]
	return ok
}

// Subject is the word used for the mode inside model instructions.
func (m GarmentMode) Subject() string {
	switch m {
	case ModeWomen:
		return "women's fashion"
	default:
		return "men's fashion"
	}
}

func (s GarmentSlot) Label() string {
	switch s {
	case SlotTop:
		return "Shirt / Top"
	case SlotBottom:
		return "Pants / Bottom"
	case SlotDress:
		return "Dress / One-Piece"
	default:
		return string(s)
	}
}
