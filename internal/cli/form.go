package cli

import (
	"ledger/internal/core"
)

// flagForm is the add-transaction form filled from command-line flags.
// An explicit --date wins over the default date the app sets.
type flagForm struct {
	description string
	amount      string
	category    string
	kind        string
	date        string

	defaultDate core.Date
}

func (f *flagForm) Values() core.Draft {
	date := f.date
	if date == "" && f.defaultDate.Valid() {
		date = f.defaultDate.String()
	}
	return core.Draft{
		Description: f.description,
		Amount:      f.amount,
		Category:    f.category,
		Kind:        f.kind,
		Date:        date,
	}
}

func (f *flagForm) Reset() {
	*f = flagForm{defaultDate: f.defaultDate}
}

func (f *flagForm) SetDefaultDate(d core.Date) { f.defaultDate = d }

// FocusFirstField has nothing to focus on a command line.
func (f *flagForm) FocusFirstField() {}
