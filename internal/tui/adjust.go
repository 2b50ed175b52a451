package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/stockroom-dev/stockroom/internal/catalog"
	"github.com/stockroom-dev/stockroom/internal/journal"
)

type adjustAction string

const (
	adjustActionDemand   adjustAction = "demand"
	adjustActionTransfer adjustAction = "transfer"
	adjustActionQuit     adjustAction = "quit"
)

// RunAdjust walks through product mutations with interactive forms until the
// user quits. Applied changes are journaled when j is non-nil.
func RunAdjust(ctx context.Context, api API, j *journal.Journal) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if api == nil {
		return errNoCatalog
	}

	status := ""
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		action, err := runAdjustMenu(ctx, status)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		var nextStatus string
		switch action {
		case adjustActionDemand:
			nextStatus, err = runUpdateDemand(ctx, api, j)
		case adjustActionTransfer:
			nextStatus, err = runTransferStock(ctx, api, j)
		case adjustActionQuit:
			return nil
		default:
			nextStatus = "Unknown action."
		}
		if err != nil {
			return err
		}
		status = nextStatus
	}
}

func runAdjustMenu(ctx context.Context, status string) (adjustAction, error) {
	action := adjustActionDemand
	fields := make([]huh.Field, 0, 2)
	if status != "" {
		fields = append(fields,
			huh.NewNote().Title("Status").Description(status),
		)
	}
	fields = append(fields,
		huh.NewSelect[adjustAction]().
			Title("Action").
			Options(
				huh.NewOption("Update demand", adjustActionDemand),
				huh.NewOption("Transfer stock", adjustActionTransfer),
				huh.NewOption("Quit", adjustActionQuit),
			).
			Value(&action),
	)

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithProgramOptions(tea.WithAltScreen())
	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return action, nil
}

// productField asks for a product ID and resolves it through api.
func productField(ctx context.Context, api API, id *string, product *catalog.Product) huh.Field {
	return huh.NewInput().
		Title("Product ID").
		Placeholder("P0001").
		Validate(func(value string) error {
			value = strings.TrimSpace(value)
			if value == "" {
				return errors.New("required")
			}
			p, err := api.Product(ctx, value)
			if err != nil {
				return err
			}
			*product = p
			return nil
		}).
		Value(id)
}

func validateWholeNumber(minimum int) func(string) error {
	return func(value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return errors.New("must be a whole number")
		}
		if n < minimum {
			return fmt.Errorf("must be %d or more", minimum)
		}
		return nil
	}
}

func runUpdateDemand(ctx context.Context, api API, j *journal.Journal) (string, error) {
	var id, demandText string
	var product catalog.Product

	form := huh.NewForm(
		huh.NewGroup(productField(ctx, api, &id, &product)),
		huh.NewGroup(
			huh.NewNote().
				Title("Product").
				DescriptionFunc(func() string { return describeProduct(product) }, &product),
			huh.NewInput().
				Title("New demand").
				Validate(validateWholeNumber(0)).
				Value(&demandText),
		),
	).WithProgramOptions(tea.WithAltScreen())

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "Update canceled.", nil
		}
		return "", err
	}

	demand, _ := strconv.Atoi(strings.TrimSpace(demandText))
	updated, err := api.UpdateDemand(ctx, product.ID, demand)
	if err != nil {
		return fmt.Sprintf("Update failed: %v", err), nil
	}
	if _, err := j.RecordDemand(ctx, updated.ID, demand); err != nil {
		return fmt.Sprintf("Updated %s but journal failed: %v", updated.ID, err), nil
	}
	return fmt.Sprintf("Set %s demand to %s", updated.ID, formatCount(demand)), nil
}

func runTransferStock(ctx context.Context, api API, j *journal.Journal) (string, error) {
	warehouses, err := api.Warehouses(ctx)
	if err != nil {
		return "", err
	}

	var id, qtyText string
	var product catalog.Product
	to := ""
	confirm := false

	form := huh.NewForm(
		huh.NewGroup(productField(ctx, api, &id, &product)),
		huh.NewGroup(
			huh.NewNote().
				Title("Product").
				DescriptionFunc(func() string { return describeProduct(product) }, &product),
			huh.NewSelect[string]().
				Title("Destination").
				OptionsFunc(func() []huh.Option[string] {
					return warehouseOptions(warehouses, product.Warehouse)
				}, &product).
				Value(&to),
			huh.NewInput().
				Title("Quantity").
				Validate(func(value string) error {
					if err := validateWholeNumber(1)(value); err != nil {
						return err
					}
					if n, _ := strconv.Atoi(strings.TrimSpace(value)); n > product.Stock {
						return fmt.Errorf("only %s in stock", formatCount(product.Stock))
					}
					return nil
				}).
				Value(&qtyText),
			huh.NewConfirm().
				Title("Transfer?").
				Affirmative("Transfer").
				Negative("Cancel").
				Value(&confirm),
		),
	).WithProgramOptions(tea.WithAltScreen())

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "Transfer canceled.", nil
		}
		return "", err
	}
	if !confirm {
		return "Transfer canceled.", nil
	}

	qty, _ := strconv.Atoi(strings.TrimSpace(qtyText))
	from := product.Warehouse
	updated, err := api.TransferStock(ctx, product.ID, from, to, qty)
	if err != nil {
		return fmt.Sprintf("Transfer failed: %v", err), nil
	}
	if _, err := j.RecordTransfer(ctx, updated.ID, from, to, qty); err != nil {
		return fmt.Sprintf("Moved %s but journal failed: %v", updated.ID, err), nil
	}
	return fmt.Sprintf("Moved %s %s -> %s", updated.ID, from, updated.Warehouse), nil
}

func warehouseOptions(warehouses []catalog.Warehouse, exclude string) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(warehouses))
	for _, wh := range warehouses {
		if strings.EqualFold(wh.Code, exclude) {
			continue
		}
		label := fmt.Sprintf("%s  %s, %s", wh.Code, wh.Name, wh.City)
		options = append(options, huh.NewOption(label, wh.Code))
	}
	return options
}

func describeProduct(p catalog.Product) string {
	if p.ID == "" {
		return ""
	}
	return fmt.Sprintf(
		"%s %s\n%s · stock %s · demand %s · %s",
		p.ID,
		p.Name,
		p.Warehouse,
		formatCount(p.Stock),
		formatCount(p.Demand),
		p.Status().Label(),
	)
}
