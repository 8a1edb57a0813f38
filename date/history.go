package date

import (
	"iter"
	"slices"
)

// History stores a chronological series of values, each associated with a
// distinct date.
type History[T any] struct {
	days   []Date
	values []T
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.days) }

// search returns the position of day, and whether it is present.
func (h *History[T]) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, func(d, t Date) int {
		switch {
		case d.Before(t):
			return -1
		case d.After(t):
			return 1
		}
		return 0
	})
}

// Append sets the value on day. An existing value at that date is overwritten.
func (h *History[T]) Append(day Date, value T) *History[T] {
	i, found := h.search(day)
	if found {
		h.values[i] = value
		return h
	}
	h.days = slices.Insert(h.days, i, day)
	h.values = slices.Insert(h.values, i, value)
	return h
}

// Get returns the value at day and true, or the zero value and false.
func (h *History[T]) Get(day Date) (T, bool) {
	if i, found := h.search(day); found {
		return h.values[i], true
	}
	var zero T
	return zero, false
}

// ValueAsOf returns the value on day, or the most recent value before it.
func (h *History[T]) ValueAsOf(day Date) (T, bool) {
	i, found := h.search(day)
	if found {
		return h.values[i], true
	}
	if i == 0 {
		var zero T
		return zero, false
	}
	return h.values[i-1], true
}

// Latest returns the latest date and value, or zero values if empty.
func (h *History[T]) Latest() (Date, T) {
	last := len(h.days) - 1
	if last < 0 {
		var zero T
		return Date{}, zero
	}
	return h.days[last], h.values[last]
}

// Values iterates over date/value pairs in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}
