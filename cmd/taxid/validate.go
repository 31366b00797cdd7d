package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/artpar/taxid/bootstrap"
	"github.com/artpar/taxid/domain/taxid"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [ID...]",
		Short: "Validate identifiers",
		Long: `Validate identifiers given as arguments, or one per line on stdin when no
arguments are given. Exits with a non-zero status if any identifier is invalid.

Examples:
  taxid validate 86095742719 65929970489
  taxid generate -n 1000 | taxid validate --quiet`,
		RunE: runValidate,
	}

	cmd.Flags().BoolP("verbose", "v", false, "print the digit distribution of valid identifiers")
	cmd.Flags().BoolP("quiet", "q", false, "print invalid identifiers only")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	a, err := bootstrap.New(cfg, bootstrap.Options{LogOutput: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	var total, invalid int

	check := func(s string) {
		total++
		id, err := taxid.Parse(s)
		if err != nil {
			invalid++
			a.Metrics.Validations.WithLabelValues("invalid").Inc()
			fmt.Fprintf(out, "%s invalid: %v\n", s, err)
			return
		}
		a.Metrics.Validations.WithLabelValues("valid").Inc()
		switch {
		case quiet:
		case verbose:
			fmt.Fprintf(out, "%s valid %s\n", s, taxid.Shape(id.Body()))
		default:
			fmt.Fprintf(out, "%s valid\n", s)
		}
	}

	if len(args) > 0 {
		for _, s := range args {
			check(s)
		}
	} else if err := scanLines(cmd.InOrStdin(), check); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := a.ExportMetrics(); err != nil {
		a.Logger.Warn().Err(err).Msg("failed to export metrics")
	}

	a.Logger.Debug().Int("total", total).Int("invalid", invalid).Msg("validation finished")
	if invalid > 0 {
		return fmt.Errorf("%d of %d identifiers invalid", invalid, total)
	}
	return nil
}

// scanLines calls fn for every non-blank line of r, trimmed.
func scanLines(r io.Reader, fn func(string)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fn(line)
	}
	return sc.Err()
}
