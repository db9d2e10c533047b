package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/inference-sim/sim"
)

var reportCashflowFile string

// reportCmd prints a run statistics summary of a cashflow matrix
// previously written to disk by `simmc run --emit`.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize a cashflow matrix file",
	Run: func(cmd *cobra.Command, args []string) {
		cashflows, err := readCashflowFile(reportCashflowFile)
		if err != nil {
			logrus.Fatalf("failed to read cashflow file: %v", err)
		}
		sim.Summarize(cashflows).Print()
	},
}

// readCashflowFile parses the ';'-delimited, comma-decimal cashflow
// matrix format written by sim.EmitCashflow back into a state-name ->
// series map.
func readCashflowFile(path string) (map[string][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("empty cashflow file %s", path)
	}
	names := strings.Split(scanner.Text(), ";")

	cashflows := make(map[string][]float64, len(names))
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), ";")
		for i, name := range names {
			v, err := strconv.ParseFloat(strings.Replace(fields[i], ",", ".", 1), 64)
			if err != nil {
				return nil, fmt.Errorf("parsing column %q: %w", name, err)
			}
			cashflows[name] = append(cashflows[name], v)
		}
	}
	return cashflows, scanner.Err()
}

func init() {
	reportCmd.Flags().StringVar(&reportCashflowFile, "cashflow-file", "", "Path to a cashflow matrix written by `simmc run --emit`")
	_ = reportCmd.MarkFlagRequired("cashflow-file")
	rootCmd.AddCommand(reportCmd)
}
