package admin

// EntityStore holds the loaded records for one admin screen and slices them
// into pages. It is populated once when the screen activates, mutated in
// place by confirmed create/update/delete outcomes, and discarded with the
// screen. The store itself is not safe for concurrent use; the owning
// controller serializes access.
type EntityStore struct {
	idField      string
	itemsPerPage int
	items        []Record
	currentPage  int
}

// NewEntityStore creates a store for records identified by idField.
// itemsPerPage values below 1 fall back to 10.
func NewEntityStore(idField string, itemsPerPage int) *EntityStore {
	if itemsPerPage < 1 {
		itemsPerPage = 10
	}
	return &EntityStore{
		idField:      idField,
		itemsPerPage: itemsPerPage,
		currentPage:  1,
	}
}

// SetItems replaces the working copy and resets to the first page.
func (s *EntityStore) SetItems(items []Record) {
	s.items = items
	s.currentPage = 1
}

// Items returns the full working copy.
func (s *EntityStore) Items() []Record {
	return s.items
}

// Len returns the number of loaded records.
func (s *EntityStore) Len() int {
	return len(s.items)
}

// ItemsPerPage returns the page size.
func (s *EntityStore) ItemsPerPage() int {
	return s.itemsPerPage
}

// CurrentPage returns the 1-based current page index.
func (s *EntityStore) CurrentPage() int {
	return s.currentPage
}

// TotalPages returns ceil(len/itemsPerPage), with a minimum of 1.
func (s *EntityStore) TotalPages() int {
	if len(s.items) == 0 {
		return 1
	}
	return (len(s.items) + s.itemsPerPage - 1) / s.itemsPerPage
}

// SetPage moves to the given page, clamped into [1, TotalPages].
func (s *EntityStore) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if max := s.TotalPages(); page > max {
		page = max
	}
	s.currentPage = page
}

// PageSlice returns the records of the current page.
func (s *EntityStore) PageSlice() []Record {
	start := (s.currentPage - 1) * s.itemsPerPage
	if start >= len(s.items) {
		return nil
	}
	end := start + s.itemsPerPage
	if end > len(s.items) {
		end = len(s.items)
	}
	return s.items[start:end]
}

// Get returns the record with the given identifier, or nil.
func (s *EntityStore) Get(id string) Record {
	if i := s.indexOf(id); i >= 0 {
		return s.items[i]
	}
	return nil
}

// Upsert merges result into the record sharing its identifier, or appends it
// as a new record. Existing attributes not present in result are preserved.
func (s *EntityStore) Upsert(result Record) {
	id := IDString(result[s.idField])
	if i := s.indexOf(id); i >= 0 {
		s.items[i] = s.items[i].Merge(result)
		return
	}
	s.items = append(s.items, result)
}

// Remove deletes the record with the given identifier and clamps the current
// page back into range, so deleting the sole item of the last page steps the
// page index down rather than leaving an empty view. Returns false when no
// record matches.
func (s *EntityStore) Remove(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.SetPage(s.currentPage)
	return true
}

func (s *EntityStore) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range s.items {
		if IDString(item[s.idField]) == id {
			return i
		}
	}
	return -1
}
