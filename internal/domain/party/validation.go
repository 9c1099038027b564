package party

// Composition bounds. Count is per entry, size is the sum over all entries.
const (
	MinEntryCount = 1
	MaxEntryCount = 10
	MinPartySize  = 2
	MaxPartySize  = 6
)

// ExpandComposition validates a composition spec and expands it into one
// requirement per slot, in entry order. It returns the index of the slot the
// creator will occupy: the first expanded slot matching creatorSlot.
func ExpandComposition(entries []CompositionEntry, creatorSlot SlotRequirement) ([]SlotRequirement, int, error) {
	if len(entries) == 0 {
		return nil, 0, ErrInvalidComposition
	}
	if !creatorSlot.Valid() {
		return nil, 0, ErrInvalidComposition
	}

	size := 0
	for _, e := range entries {
		if !e.Requirement.Valid() {
			return nil, 0, ErrInvalidComposition
		}
		if e.Count < MinEntryCount || e.Count > MaxEntryCount {
			return nil, 0, ErrInvalidComposition
		}
		size += e.Count
	}
	if size < MinPartySize || size > MaxPartySize {
		return nil, 0, ErrInvalidComposition
	}

	expanded := make([]SlotRequirement, 0, size)
	creatorIdx := -1
	for _, e := range entries {
		for i := 0; i < e.Count; i++ {
			if creatorIdx < 0 && e.Requirement == creatorSlot {
				creatorIdx = len(expanded)
			}
			expanded = append(expanded, e.Requirement)
		}
	}
	if creatorIdx < 0 {
		return nil, 0, ErrCreatorSlotMissing
	}

	return expanded, creatorIdx, nil
}
