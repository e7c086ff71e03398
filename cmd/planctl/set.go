package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simaogato/retireplan-backend/internal/adapter/wire"
	"github.com/simaogato/retireplan-backend/internal/domain"
	"github.com/simaogato/retireplan-backend/internal/usecase/autosave"
)

var flagRemoveAnnuity []int

var setCmd = &cobra.Command{
	Use:   "set slot.field=value ...",
	Short: "Edit fields of a saved plan",
	Long: `Edit fields of a saved plan and print the recalculated results.

Slots are socialSecurity, housing, currentHome and annuities. Annuity fields
take an index, and the index one past the last entry appends a new annuity:

  planctl set housing.downPayment=65000 annuities.1.name=Pension annuities.1.monthlyPayment=900

Edits are batched and saved once when the command exits. If any edit fails
nothing is saved.`,
	RunE: runSet,
}

func init() {
	setCmd.Flags().IntSliceVar(&flagRemoveAnnuity, "remove-annuity", nil, "Remove the annuity at this index before applying edits")
	setCmd.Args = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && len(flagRemoveAnnuity) == 0 {
			return errors.New("nothing to set")
		}
		return nil
	}
}

// assignment is one parsed slot.field=value argument
type assignment struct {
	Slot  string
	Index int
	Field string
	Value string
}

func parseAssignment(arg string) (assignment, error) {
	path, value, ok := strings.Cut(arg, "=")
	if !ok {
		return assignment{}, fmt.Errorf("%q: expected slot.field=value", arg)
	}

	parts := strings.Split(path, ".")
	switch {
	case len(parts) == 2 && parts[0] != "annuities":
		a := assignment{Slot: parts[0], Field: parts[1], Value: value}
		switch a.Slot {
		case "socialSecurity", "housing", "currentHome":
			return a, nil
		}
		return assignment{}, fmt.Errorf("%q: unknown slot %q", arg, a.Slot)
	case len(parts) == 3 && parts[0] == "annuities":
		i, err := strconv.Atoi(parts[1])
		if err != nil || i < 0 {
			return assignment{}, fmt.Errorf("%q: annuity index must be a non-negative number", arg)
		}
		return assignment{Slot: parts[0], Index: i, Field: parts[2], Value: value}, nil
	default:
		return assignment{}, fmt.Errorf("%q: expected slot.field=value or annuities.N.field=value", arg)
	}
}

func runSet(cmd *cobra.Command, args []string) error {
	assignments := make([]assignment, 0, len(args))
	for _, arg := range args {
		a, err := parseAssignment(arg)
		if err != nil {
			return err
		}
		assignments = append(assignments, a)
	}

	key, err := planKey()
	if err != nil {
		return err
	}

	service, closeStore, err := openPlanner(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	session := autosave.NewSession(service, key, autosave.SessionOptions{
		Delay:  cfg.Autosave.Delay,
		Logger: logger,
		Manual: true,
	})
	if err := session.Start(cmd.Context()); err != nil {
		return err
	}

	if err := commitEdits(cmd.Context(), session, flagRemoveAnnuity, assignments); err != nil {
		return err
	}

	snapshot := session.Snapshot()
	return render(cmd.OutOrStdout(), planView{
		Plan:     wire.FromSnapshot(snapshot),
		Analysis: wire.Analyze(snapshot),
	})
}

// commitEdits applies every edit and saves them together. When an edit fails
// the earlier ones are discarded so the stored plan is left as it was.
func commitEdits(ctx context.Context, session *autosave.Session, remove []int, assignments []assignment) error {
	if err := applyEdits(session, remove, assignments); err != nil {
		session.Discard()
		return err
	}
	if err := session.Close(ctx); err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	return nil
}

// applyEdits removes annuities (highest index first) and then applies each assignment
func applyEdits(session *autosave.Session, remove []int, assignments []assignment) error {
	removals := slices.Clone(remove)
	slices.Sort(removals)
	slices.Reverse(removals)
	for _, i := range removals {
		if err := session.RemoveAnnuity(i); err != nil {
			return fmt.Errorf("removing annuity %d: %w", i, err)
		}
	}

	for _, a := range assignments {
		if err := apply(session, a); err != nil {
			return err
		}
	}
	return nil
}

func apply(session *autosave.Session, a assignment) error {
	var patchErr error
	var err error

	switch a.Slot {
	case "socialSecurity":
		err = session.UpdateSocialSecurity(func(p *domain.SocialSecurityProfile) {
			w := wire.FromSocialSecurity(*p)
			if patchErr = wire.Patch(&w, a.Field, a.Value); patchErr == nil {
				*p = w.ToDomain()
			}
		})
	case "housing":
		err = session.UpdateHousing(func(p *domain.HousingPlan) {
			w := wire.FromHousing(*p)
			if patchErr = wire.Patch(&w, a.Field, a.Value); patchErr == nil {
				*p = w.ToDomain()
			}
		})
	case "currentHome":
		err = session.UpdateCurrentHome(func(h *domain.CurrentHome) {
			w := wire.FromCurrentHome(*h)
			if patchErr = wire.Patch(&w, a.Field, a.Value); patchErr == nil {
				*h = w.ToDomain()
			}
		})
	case "annuities":
		if a.Index == len(session.Snapshot().Annuities) {
			if err := session.AddAnnuity(); err != nil {
				return err
			}
		}
		err = session.UpdateAnnuity(a.Index, func(an *domain.Annuity) {
			w := wire.FromAnnuity(*an)
			if patchErr = wire.Patch(&w, a.Field, a.Value); patchErr == nil {
				*an = w.ToDomain()
			}
		})
	}

	if patchErr != nil {
		return fmt.Errorf("%s.%s: %w", a.Slot, a.Field, patchErr)
	}
	if err != nil {
		return fmt.Errorf("%s.%s: %w", a.Slot, a.Field, err)
	}
	return nil
}
