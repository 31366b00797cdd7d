package main

import (
	"bufio"
	"fmt"

	"github.com/artpar/taxid/adapters/random"
	"github.com/artpar/taxid/domain/taxid"
	"github.com/artpar/taxid/ports"
	"github.com/spf13/cobra"
)

func newRandomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print random valid identifiers (duplicates possible)",
		Args:  cobra.NoArgs,
		RunE:  runRandom,
	}

	cmd.Flags().IntP("count", "n", 1, "number of identifiers to print")
	cmd.Flags().Uint64("seed", 0, "seed for reproducible output (0 = random)")

	return cmd
}

func runRandom(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetUint64("seed")
	if count < 0 {
		return fmt.Errorf("count must not be negative, got %d", count)
	}

	var rng ports.Random = random.New()
	if seed != 0 {
		rng = random.NewSeeded(seed)
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	for range count {
		fmt.Fprintln(out, taxid.Random(rng))
	}
	return out.Flush()
}
