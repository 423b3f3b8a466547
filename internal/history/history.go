// Package history tracks which wallpapers were opened in the detail view so
// the user can step back and forward through recently viewed records.
package history

// Trail is a bounded back/forward trail of wallpaper record IDs.
type Trail struct {
	stack    []string
	position int
	capacity int
}

// NewTrail creates a trail holding at most capacity entries. A capacity of 0
// disables the trail entirely; negative values are treated as 0.
func NewTrail(capacity int) *Trail {
	if capacity < 0 {
		capacity = 0
	}
	return &Trail{
		stack:    make([]string, 0, capacity),
		position: -1,
		capacity: capacity,
	}
}

// Push records that the given record was opened. Opening a new record after
// stepping back discards the forward part of the trail; pushing the record
// already at the current position is a no-op.
func (tr *Trail) Push(id string) {
	if tr.capacity == 0 {
		return
	}
	if tr.position != -1 && tr.position < len(tr.stack)-1 {
		tr.stack = tr.stack[:tr.position+1]
	}
	if tr.position >= 0 && tr.stack[tr.position] == id {
		return
	}
	tr.stack = append(tr.stack, id)
	if len(tr.stack) > tr.capacity {
		tr.stack = tr.stack[len(tr.stack)-tr.capacity:]
	}
	tr.position = len(tr.stack) - 1
}

// Back steps to the previously viewed record, if any.
func (tr *Trail) Back() (id string, ok bool) {
	if tr.capacity == 0 || tr.position <= 0 {
		return "", false
	}
	tr.position--
	return tr.stack[tr.position], true
}

// Forward steps to the next record after a Back, if any.
func (tr *Trail) Forward() (id string, ok bool) {
	if tr.capacity == 0 || tr.position == -1 || tr.position >= len(tr.stack)-1 {
		return "", false
	}
	tr.position++
	return tr.stack[tr.position], true
}

// Remove drops every occurrence of the given record from the trail, keeping
// the position on a sensible neighbour. Used when a record is deleted so the
// trail never resurrects it.
func (tr *Trail) Remove(id string) {
	if tr.capacity == 0 || len(tr.stack) == 0 {
		return
	}

	kept := tr.stack[:0]
	removedBefore := 0
	currentRemoved := false
	for i, entry := range tr.stack {
		if entry == id {
			if i < tr.position {
				removedBefore++
			} else if i == tr.position {
				currentRemoved = true
			}
			continue
		}
		kept = append(kept, entry)
	}
	tr.stack = kept

	if len(tr.stack) == 0 {
		tr.position = -1
		return
	}

	pos := tr.position - removedBefore
	if currentRemoved {
		pos--
	}
	if pos < 0 {
		pos = 0
	}
	if pos > len(tr.stack)-1 {
		pos = len(tr.stack) - 1
	}
	tr.position = pos
}

// Len returns the number of entries in the trail.
func (tr *Trail) Len() int {
	return len(tr.stack)
}

// Clear resets the trail.
func (tr *Trail) Clear() {
	tr.stack = tr.stack[:0]
	tr.position = -1
}
