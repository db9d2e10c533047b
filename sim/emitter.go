package sim

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// EmitCashflow writes the cashflow matrix to path as a ';'-delimited
// file: a header row of state names in ascending lexicographic order
// followed by "Total", then one row per time step with values formatted
// to six decimal places using a comma as the decimal separator.
func EmitCashflow(path string, cashflows map[string][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return makeErr(ErrOutputOpenFailed, "%s: %v", path, err)
	}
	defer f.Close()

	names := make([]string, 0, len(cashflows))
	for name := range cashflows {
		if name == TotalKey {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	names = append(names, TotalKey)

	if _, err := fmt.Fprintln(f, strings.Join(names, ";")); err != nil {
		return makeErr(ErrOutputOpenFailed, "%s: writing header: %v", path, err)
	}

	steps := len(cashflows[TotalKey])
	for t := 0; t < steps; t++ {
		fields := make([]string, len(names))
		for i, name := range names {
			fields[i] = formatDouble(cashflows[name][t])
		}
		if _, err := fmt.Fprintln(f, strings.Join(fields, ";")); err != nil {
			return makeErr(ErrOutputOpenFailed, "%s: writing row %d: %v", path, t, err)
		}
	}

	return nil
}

// formatDouble renders v with fixed six-decimal precision and a comma
// decimal separator.
func formatDouble(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	return strings.Replace(s, ".", ",", 1)
}
