package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"fashion-unlimited/internal/domain/valueobjects"
)

type TryOnRequestID string

// TryOnRequest is the input of one fitting cycle: a portrait plus the garments
// to put on it. Garments are keyed by slot and always iterated in canonical
// slot order.
type TryOnRequest struct {
	id          TryOnRequestID
	mode        valueobjects.GarmentMode
	personImage *valueobjects.ImageData
	garments    map[valueobjects.GarmentSlot]*valueobjects.ImageData
	createdAt   time.Time
}

func NewTryOnRequest(
	mode valueobjects.GarmentMode,
	personImage *valueobjects.ImageData,
	garments map[valueobjects.GarmentSlot]*valueobjects.ImageData,
) (*TryOnRequest, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("garment mode %q is not supported", mode)
	}

	if personImage == nil {
		return nil, fmt.Errorf("person image is required")
	}

	kept := make(map[valueobjects.GarmentSlot]*valueobjects.ImageData, len(garments))
	for slot, img := range garments {
		if img == nil {
			continue
		}
		if !mode.Allows(slot) {
			return nil, fmt.Errorf("%s slot is not available in %s mode", slot, mode)
		}
		kept[slot] = img
	}

	if len(kept) == 0 {
		return nil, fmt.Errorf("at least one garment image is required")
	}

	return &TryOnRequest{
		id:          TryOnRequestID("req_" + uuid.NewString()),
		mode:        mode,
		personImage: personImage,
		garments:    kept,
		createdAt:   time.Now(),
	}, nil
}

func (r *TryOnRequest) ID() TryOnRequestID {
	return r.id
}

func (r *TryOnRequest) Mode() valueobjects.GarmentMode {
	return r.mode
}

func (r *TryOnRequest) PersonImage() *valueobjects.ImageData {
	return r.personImage
}

func (r *TryOnRequest) Garment(slot valueobjects.GarmentSlot) *valueobjects.ImageData {
	return r.garments[slot]
}

// GarmentSlots lists the filled slots in canonical order.
func (r *TryOnRequest) GarmentSlots() []valueobjects.GarmentSlot {
	var slots []valueobjects.GarmentSlot
	for _, slot := range valueobjects.AllSlots {
		if _, ok := r.garments[slot]; ok {
			slots = append(slots, slot)
		}
	}
	return slots
}

// OrderedImages returns [person, top?, bottom?, dress?] with absent slots
// skipped. Both model calls send images in exactly this order.
func (r *TryOnRequest) OrderedImages() []*valueobjects.ImageData {
	images := []*valueobjects.ImageData{r.personImage}
	for _, slot := range r.GarmentSlots() {
		images = append(images, r.garments[slot])
	}
	return images
}

func (r *TryOnRequest) CreatedAt() time.Time {
	return r.createdAt
}
