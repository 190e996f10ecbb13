package cli

import (
	"context"
	"strings"

	"github.com/amanthanvi/bloom/internal/app"
	"github.com/amanthanvi/bloom/internal/records"
	"github.com/spf13/cobra"
)

func newContactCommand(deps commandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage the emergency contact",
	}
	cmd.AddCommand(
		newContactSetCommand(deps),
		newContactShowCommand(deps),
		newContactClearCommand(deps),
		newContactCallCommand(deps),
	)
	return cmd
}

func newContactSetCommand(deps commandDeps) *cobra.Command {
	var name, phone string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save the emergency contact",
		Long:  "Save the emergency contact. Without --name and --phone an interactive form is shown.",
		Example: "  bloom contact set --name Sam --phone \"+1 555 0100\"\n" +
			"  bloom contact set",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("contact set does not accept positional arguments")
			}
			return withService(cmd.Context(), deps, func(ctx context.Context, s session) error {
				contact := records.EmergencyContact{Name: strings.TrimSpace(name), Phone: strings.TrimSpace(phone)}
				if contact.Name == "" || contact.Phone == "" {
					if !isInteractive() {
						return usageErrorf("contact set requires --name and --phone")
					}
					current, _, err := s.service.GetEmergencyContact(ctx)
					if err != nil {
						s.logger.Warn("saved contact unreadable; starting from an empty form", "error", err)
						current = records.EmergencyContact{}
					}
					if contact.Name != "" {
						current.Name = contact.Name
					}
					if contact.Phone != "" {
						current.Phone = contact.Phone
					}
					contact, err = promptContactFn(current)
					if err != nil {
						return err
					}
				}
				if err := checkLength("name", contact.Name, app.MaxContactNameLength); err != nil {
					return err
				}
				if err := checkLength("phone", contact.Phone, app.MaxContactPhoneLength); err != nil {
					return err
				}

				saved, err := s.service.SaveEmergencyContact(ctx, contact)
				if err != nil {
					return err
				}
				if deps.globals.JSON {
					return printJSON(deps.out, saved)
				}
				return printf(deps, "emergency contact saved: %s\n", saved.Name)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Contact name")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone number")
	return cmd
}

func newContactShowCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the emergency contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("contact show does not accept positional arguments")
			}
			return withService(cmd.Context(), deps, func(ctx context.Context, s session) error {
				contact, ok, err := s.service.GetEmergencyContact(ctx)
				if err != nil {
					return err
				}
				if deps.globals.JSON {
					if !ok {
						return printJSON(deps.out, nil)
					}
					return printJSON(deps.out, contact)
				}
				if !ok {
					return printf(deps, "no emergency contact set\n")
				}
				return printf(deps, "name=%s phone=%s\n", contact.Name, contact.Phone)
			})
		},
	}
}

func newContactClearCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the emergency contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("contact clear does not accept positional arguments")
			}
			proceed, err := confirm(deps, "Remove the emergency contact?", "Remove")
			if err != nil {
				return err
			}
			if !proceed {
				return printf(deps, "clear cancelled\n")
			}
			return withService(cmd.Context(), deps, func(ctx context.Context, s session) error {
				if err := s.service.ClearEmergencyContact(ctx); err != nil {
					return err
				}
				if deps.globals.JSON {
					return printJSON(deps.out, map[string]any{"cleared": true})
				}
				return printf(deps, "emergency contact removed\n")
			})
		},
	}
}

// newContactCallCommand prints the tel: link for the contact. Opening it is
// left to the caller's platform.
func newContactCallCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:     "call",
		Short:   "Print the dial link for the emergency contact",
		Example: "  xdg-open \"$(bloom contact call)\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("contact call does not accept positional arguments")
			}
			return withService(cmd.Context(), deps, func(ctx context.Context, s session) error {
				contact, ok, err := s.service.GetEmergencyContact(ctx)
				if err != nil {
					return err
				}
				if !ok {
					return notFoundf("emergency contact")
				}
				uri := records.DialURI(contact.Phone)
				if deps.globals.JSON {
					return printJSON(deps.out, map[string]any{"name": contact.Name, "uri": uri})
				}
				_, err = deps.out.Write([]byte(uri + "\n"))
				return err
			})
		},
	}
}
