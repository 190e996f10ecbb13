package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/amanthanvi/bloom/internal/app"
	"github.com/amanthanvi/bloom/internal/records"
	"github.com/charmbracelet/huh"
)

var (
	confirmFn       = confirmWithForm
	promptContactFn = promptContactWithForm
)

// confirm returns true without prompting when --yes is set. A prompt that
// cannot be shown is a usage error.
func confirm(deps commandDeps, title, affirmative string) (bool, error) {
	if deps.globals.Yes {
		return true, nil
	}
	if !isInteractive() {
		return false, usageErrorf("refusing to prompt without a terminal; pass --yes to confirm")
	}
	return confirmFn(title, affirmative)
}

func confirmWithForm(title, affirmative string) (bool, error) {
	ok := false
	err := huh.NewConfirm().
		Title(title).
		Affirmative(affirmative).
		Negative("Cancel").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	return ok, nil
}

func promptContactWithForm(current records.EmergencyContact) (records.EmergencyContact, error) {
	contact := current
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Contact name").
				CharLimit(app.MaxContactNameLength).
				Value(&contact.Name).
				Validate(requiredWithin("name", app.MaxContactNameLength)),
			huh.NewInput().
				Title("Phone number").
				CharLimit(app.MaxContactPhoneLength).
				Value(&contact.Phone).
				Validate(requiredWithin("phone", app.MaxContactPhoneLength)),
		),
	)
	if err := form.Run(); err != nil {
		return records.EmergencyContact{}, fmt.Errorf("contact form: %w", err)
	}
	return contact, nil
}

func requiredWithin(field string, limit int) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return checkLength(field, value, limit)
	}
}

// checkLength counts runes so multi-byte input gets the documented limit.
func checkLength(field, value string, limit int) error {
	if n := utf8.RuneCountInString(value); n > limit {
		return usageErrorf("%s must be at most %d characters, got %d", field, limit, n)
	}
	return nil
}
