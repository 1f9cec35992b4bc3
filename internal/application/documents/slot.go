package documents

import "github.com/inesh111/pj-motors/internal/models"

// SlotKind says whether a document type holds one current file per car or
// accumulates without bound.
type SlotKind int

const (
	// SingleSlot types keep at most one document per car; a new upload
	// supersedes the previous one.
	SingleSlot SlotKind = iota
	// MultiSlot types are purely additive.
	MultiSlot
)

// SlotKindOf resolves the slot kind for a document type. Only CAR_PICTURE is
// multi-slot; every other tag, known or not, is single-slot.
func SlotKindOf(docType string) SlotKind {
	if docType == models.DocCarPicture {
		return MultiSlot
	}
	return SingleSlot
}
