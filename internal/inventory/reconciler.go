package inventory

import "github.com/nymstead/wayfarer/internal/domain"

// Reconcile adjusts the slot array after the maximum capacity changed.
//
// Shrinking collects stacks stranded in indices >= newCapacity in index
// order, relocates each into the lowest empty slot below newCapacity, and
// truncates. Stacks with no destination are reported as lost - the caller
// must surface them, never drop them silently. Growing extends the array
// with empty slots. No two stacks ever share a slot, and the total item
// count is conserved except for what is explicitly reported lost.
func Reconcile(slots []*domain.Stack, oldCapacity, newCapacity int) ([]*domain.Stack, int, []domain.LostStack) {
	slots = normalize(slots, oldCapacity)

	if newCapacity < 0 {
		newCapacity = 0
	}

	if newCapacity >= len(slots) {
		return normalize(slots, newCapacity), 0, nil
	}

	relocated := 0
	var lost []domain.LostStack

	for i := newCapacity; i < len(slots); i++ {
		stranded := slots[i]
		if stranded == nil {
			continue
		}
		dest := firstEmpty(slots[:newCapacity])
		if dest == -1 {
			lost = append(lost, domain.LostStack{
				SlotIndex: i,
				ItemKey:   stranded.ItemKey,
				Quantity:  stranded.Quantity,
			})
			continue
		}
		slots[dest] = stranded
		slots[i] = nil
		relocated++
	}

	return slots[:newCapacity], relocated, lost
}

func firstEmpty(slots []*domain.Stack) int {
	for i, s := range slots {
		if s == nil {
			return i
		}
	}
	return -1
}
