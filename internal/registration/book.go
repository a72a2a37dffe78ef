package registration

import "sciencehub-backend/internal/models"

// NormalizeBook returns the structured registration book for an event,
// synthesizing it from the legacy flat fields when the structured
// shape is absent. Adult/child sub-counts are derived by summing over
// the active entries of whichever list is present.
func NormalizeBook(ev models.Event) models.RegistrationBook {
	if ev.Registrations.Book != nil {
		book := *ev.Registrations.Book
		if book.List == nil {
			book.List = []models.Registration{}
		}
		book.Max = ev.Capacity
		return book
	}

	book := models.RegistrationBook{
		Max:  ev.Capacity,
		List: append([]models.Registration{}, ev.Registrations.LegacyList...),
	}
	recount(&book)
	return book
}

// recount recomputes the aggregate counters from the active entries of
// the list. Counters are never adjusted incrementally.
func recount(book *models.RegistrationBook) {
	book.Current = 0
	book.CurrentAdults = 0
	book.CurrentChildren = 0
	for _, reg := range book.List {
		if !reg.Active {
			continue
		}
		book.Current += reg.Tickets()
		book.CurrentAdults += reg.Adults
		book.CurrentChildren += reg.Children
	}
}
