package cli

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/LeJamon/goHederad/internal/core/tx"
	"github.com/LeJamon/goHederad/internal/core/tx/transfer"
	"github.com/LeJamon/goHederad/internal/metrics"
)

var applyCmd = &cobra.Command{
	Use:   "apply [scenario.yaml]",
	Short: "Apply the transfers of a scenario file",
	Long: `Apply seeds the genesis accounts, tokens, relationships and NFTs of a
scenario into the configured state backend, then applies each transfer of the
scenario in order and prints its status, alias resolutions and assessed
custom fees.

Example:
    hederad apply ./scenarios/royalty.yaml
    hederad apply ./scenarios/royalty.yaml --debug`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	log := logger.WithField("prefix", "apply")

	scenario, err := LoadScenario(args[0])
	if err != nil {
		return err
	}

	view, closeState, err := openState(cfg.State)
	if err != nil {
		return err
	}
	defer closeState()

	if err := scenario.Seed(tx.NewStores(view)); err != nil {
		return fmt.Errorf("failed to seed genesis: %w", err)
	}
	log.WithFields(logrus.Fields{
		"accounts": len(scenario.Accounts),
		"tokens":   len(scenario.Tokens),
		"nfts":     len(scenario.Nfts),
		"backend":  cfg.State.Backend,
	}).Info("genesis seeded")

	opts := []tx.EngineOption{tx.WithLogger(logger.WithField("prefix", "engine"))}
	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		recorder, err := metrics.NewRecorder(registry)
		if err != nil {
			return err
		}
		opts = append(opts, tx.WithMetrics(recorder))
	}
	engine := tx.NewEngine(view, cfg.EngineConfig(), transfer.NewHandler(), opts...)

	out := cmd.OutOrStdout()
	for i, f := range scenario.Transfers {
		name := f.Name
		if name == "" {
			name = fmt.Sprintf("transfer %d", i+1)
		}
		op, payer, err := f.Operation()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		printResult(out, name, engine.ApplyTransfer(op, payer))
	}

	if registry != nil {
		return printMetrics(out, registry)
	}
	return nil
}

func printResult(out io.Writer, name string, result tx.ApplyResult) {
	fmt.Fprintf(out, "%s: %s\n", name, result.Result)
	if !result.Applied {
		fmt.Fprintf(out, "  reason: %s\n", result.Message)
		return
	}
	for _, res := range result.Record.Resolutions {
		fmt.Fprintf(out, "  alias %x -> %s\n", res.Alias, res.AccountID)
	}
	for _, fee := range result.Record.AssessedCustomFees {
		denom := "hbar"
		if fee.TokenID != nil {
			denom = fee.TokenID.String()
		}
		fmt.Fprintf(out, "  fee %d %s -> %s (payers", fee.Amount, denom, fee.CollectorID)
		for _, payer := range fee.EffectivePayers {
			fmt.Fprintf(out, " %s", payer)
		}
		fmt.Fprintln(out, ")")
	}
	if n := result.Record.AutoCreations + result.Record.LazyCreations; n > 0 {
		fmt.Fprintf(out, "  created %d account(s), %d hollow\n", n, result.Record.LazyCreations)
	}
}

func printMetrics(out io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(out, "%s%s %g\n", mf.GetName(), labels, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				fmt.Fprintf(out, "%s%s count=%d\n", mf.GetName(), labels, m.GetHistogram().GetSampleCount())
			}
		}
	}
	return nil
}
