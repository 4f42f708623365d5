// leasecalc - Lease rent schedule calculator
//
// Usage:
//
//	leasecalc compute --lease lease.yaml [--format table|json] [--horizon 5]
//	leasecalc scenarios [--show-json]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/warp/lease-engine/api"
	"github.com/warp/lease-engine/factory"
	"github.com/warp/lease-engine/generic"
	"github.com/warp/lease-engine/generic/store"
	"github.com/warp/lease-engine/indexation"
	"github.com/warp/lease-engine/rent"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "leasecalc",
		Usage:   "Compute rent schedules for commercial leases",
		Version: version,
		Commands: []*cli.Command{
			computeCommand(),
			scenariosCommand(),
		},
	}
}

// =============================================================================
// COMPUTE COMMAND
// =============================================================================

func computeCommand() *cli.Command {
	return &cli.Command{
		Name:  "compute",
		Usage: "Compute the rent schedule of a lease file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "lease",
				Aliases:  []string{"l"},
				Usage:    "Path to lease definition (.json, .yaml, .yml)",
				Required: true,
				EnvVars:  []string{"LEASECALC_LEASE"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "table",
				Usage:   "Output format (table, json)",
				EnvVars: []string{"LEASECALC_FORMAT"},
			},
			&cli.IntFlag{
				Name:  "horizon",
				Usage: "Override horizon_years from the lease file",
			},
		},
		Action: runCompute,
	}
}

func runCompute(c *cli.Context) error {
	lease, err := factory.NewLeaseFactory().LoadFile(c.String("lease"))
	if err != nil {
		return err
	}
	if h := c.Int("horizon"); h != 0 {
		lease.Input.HorizonYears = h
	}

	result, err := computeLease(c.Context, lease, c.App.ErrWriter)
	if err != nil {
		return err
	}

	return writeResult(c.App.Writer, c.String("format"), lease, result)
}

// computeLease fills missing index data from the embedded series, or from
// the bundled ILC series for ILC leases that embed none.
func computeLease(ctx context.Context, lease *factory.Lease, logw io.Writer) (*rent.ScheduleResult, error) {
	if lease.NeedsIndex() {
		series := lease.Series
		if len(series) == 0 && lease.IndexType == indexation.ILC {
			fmt.Fprintln(logw, "No index_series in lease, using bundled ILC series")
			var err error
			series, err = bundledILC()
			if err != nil {
				return nil, err
			}
		}

		mem := store.NewMemory()
		if len(series) > 0 {
			if err := mem.SaveIndexPoints(ctx, string(lease.IndexType), series); err != nil {
				return nil, err
			}
		}
		if err := lease.ApplyIndex(ctx, indexation.NewProvider(mem)); err != nil {
			return nil, err
		}
	}
	return rent.ComputeLeaseRentSchedule(lease.Input)
}

func bundledILC() ([]generic.IndexPoint, error) {
	var points []generic.IndexPoint
	for _, p := range factory.ILCSeries() {
		d, err := generic.ParseDate(p.Date)
		if err != nil {
			return nil, err
		}
		points = append(points, generic.IndexPoint{Date: d, Value: p.Value})
	}
	return points, nil
}

// =============================================================================
// SCENARIOS COMMAND
// =============================================================================

type preset struct {
	id   string
	json string
}

func presets() []preset {
	return []preset{
		{"office-ilc", factory.OfficeLeaseJSON("lyon-hq", "Lyon HQ", "2024-03-06", "2033-03-05", 3000)},
		{"retail-monthly", factory.MonthlyLeaseJSON("annecy-shop", "Annecy shop", "2025-01-15", "2034-01-14", 1500, 125)},
		{"short-annex", factory.OfficeLeaseJSON("bordeaux-annex", "Bordeaux annex", "2024-05-20", "2025-08-14", 1200)},
	}
}

func scenariosCommand() *cli.Command {
	return &cli.Command{
		Name:  "scenarios",
		Usage: "Compute the built-in demo leases",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "show-json",
				Usage: "Print each lease definition before its summary",
			},
		},
		Action: func(c *cli.Context) error {
			return runScenarios(c.Context, c.App.Writer, c.App.ErrWriter, c.Bool("show-json"))
		},
	}
}

func runScenarios(ctx context.Context, w, logw io.Writer, showJSON bool) error {
	f := factory.NewLeaseFactory()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tLEASE\tPERIODS\tDEPOSIT HT\tTOTAL NET HT\tTCAM")
	for _, p := range presets() {
		if showJSON {
			fmt.Fprintf(w, "# %s\n%s\n", p.id, p.json)
		}

		lease, err := f.ParseLease(p.json)
		if err != nil {
			return fmt.Errorf("%s: %w", p.id, err)
		}
		result, err := computeLease(ctx, lease, logw)
		if err != nil {
			return fmt.Errorf("%s: %w", p.id, err)
		}

		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			p.id, lease.Name, len(result.Schedule),
			result.Summary.DepositHT.StringFixed(2),
			result.Summary.TotalNetRentHT.StringFixed(2),
			tcamString(result.Summary.TCAM),
		)
	}
	return tw.Flush()
}

// =============================================================================
// OUTPUT
// =============================================================================

func writeResult(w io.Writer, format string, lease *factory.Lease, result *rent.ScheduleResult) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(api.ToScheduleDTO(lease.ID, result))
	case "table", "":
		return writeTable(w, lease, result)
	default:
		return fmt.Errorf("unknown format %q (use table or json)", format)
	}
}

func writeTable(w io.Writer, lease *factory.Lease, result *rent.ScheduleResult) error {
	title := lease.Name
	if title == "" {
		title = lease.ID
	}
	if title != "" {
		fmt.Fprintf(w, "%s\n\n", title)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "START\tEND\tFACTOR\tOFFICE\tPARKING\tOTHER\tCHARGES\tTAXES\tFRANCHISE\tINCENTIVES\tNET\t")
	for _, p := range result.Schedule {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			p.PeriodStart, p.PeriodEnd, p.IndexFactor.StringFixed(6),
			p.OfficeRentHT.StringFixed(2), p.ParkingRentHT.StringFixed(2), p.OtherCostsHT.StringFixed(2),
			p.ChargesHT.StringFixed(2), p.TaxesHT.StringFixed(2),
			p.FranchiseHT.StringFixed(2), p.IncentivesHT.StringFixed(2), p.NetRentHT.StringFixed(2),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "YEAR\tBASE\tCHARGES\tTAXES\tFRANCHISE\tINCENTIVES\tNET\t")
	for _, y := range result.Summary.YearlyTotals {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			y.Year, y.BaseRentHT.StringFixed(2), y.ChargesHT.StringFixed(2), y.TaxesHT.StringFixed(2),
			y.FranchiseHT.StringFixed(2), y.IncentivesHT.StringFixed(2), y.NetRentHT.StringFixed(2),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nDeposit HT:     %s\n", result.Summary.DepositHT.StringFixed(2))
	fmt.Fprintf(w, "Total net HT:   %s\n", result.Summary.TotalNetRentHT.StringFixed(2))
	fmt.Fprintf(w, "Index TCAM:     %s\n", tcamString(result.Summary.TCAM))
	fmt.Fprintf(w, "Horizon end:    %s\n", result.Summary.HorizonEnd)
	return nil
}

func tcamString(tcam *decimal.Decimal) string {
	if tcam == nil {
		return "-"
	}
	return tcam.StringFixed(6)
}
