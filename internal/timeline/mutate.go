package timeline

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/tripline/internal/domain"
)

var (
	// ErrItemNotFound indicates no timeline item has the requested id.
	ErrItemNotFound = errors.New("timeline item not found")

	// ErrIndexOutOfRange indicates an insertion or move target outside the timeline.
	ErrIndexOutOfRange = errors.New("timeline index out of range")
)

// Insert places item at index and reorders the day.
func Insert(day *domain.Day, index int, item *domain.Item) error {
	if index < 0 || index > len(day.Timeline) {
		return fmt.Errorf("insert at %d: %w", index, ErrIndexOutOfRange)
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if day.IndexOf(item.ID) >= 0 {
		return fmt.Errorf("insert %s: duplicate item id", item.ID)
	}

	day.Timeline = append(day.Timeline, nil)
	copy(day.Timeline[index+1:], day.Timeline[index:])
	day.Timeline[index] = item

	commit(day)
	return nil
}

// Append adds item at the end of the day and reorders.
func Append(day *domain.Day, item *domain.Item) error {
	return Insert(day, len(day.Timeline), item)
}

// Remove deletes the item with id and reorders the day.
func Remove(day *domain.Day, id string) (*domain.Item, error) {
	i := day.IndexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("remove %s: %w", id, ErrItemNotFound)
	}
	removed := day.Timeline[i]
	day.Timeline = append(day.Timeline[:i], day.Timeline[i+1:]...)

	commit(day)
	return removed, nil
}

// Move relocates the item with id to index (drag-reorder) and reorders.
func Move(day *domain.Day, id string, index int) error {
	from := day.IndexOf(id)
	if from < 0 {
		return fmt.Errorf("move %s: %w", id, ErrItemNotFound)
	}
	if index < 0 || index >= len(day.Timeline) {
		return fmt.Errorf("move to %d: %w", index, ErrIndexOutOfRange)
	}

	item := day.Timeline[from]
	rest := append(day.Timeline[:from:from], day.Timeline[from+1:]...)
	out := make([]*domain.Item, 0, len(day.Timeline))
	out = append(out, rest[:index]...)
	out = append(out, item)
	out = append(out, rest[index:]...)
	day.Timeline = out

	commit(day)
	return nil
}

// Copy duplicates the item with id under newID right after the original.
func Copy(day *domain.Day, id, newID string) (*domain.Item, error) {
	i := day.IndexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("copy %s: %w", id, ErrItemNotFound)
	}
	dup := day.Timeline[i].Clone()
	dup.ID = newID
	if err := Insert(day, i+1, dup); err != nil {
		return nil, err
	}
	return dup, nil
}

// Update applies edit to the item with id, validates it and reorders.
func Update(day *domain.Day, id string, edit func(*domain.Item)) error {
	i := day.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("update %s: %w", id, ErrItemNotFound)
	}
	edited := day.Timeline[i].Clone()
	edit(edited)
	edited.ID = id
	if err := edited.Validate(); err != nil {
		return err
	}
	day.Timeline[i] = edited

	commit(day)
	return nil
}

func commit(day *domain.Day) {
	day.Touch()
	Reorder(day)
}
