package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/inference-sim/sim"
)

var validateTransitionsFile string

// validateCmd loads a transition table and reports its shape. It does
// not write the table back out.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load a transition table and report its shape",
	Run: func(cmd *cobra.Command, args []string) {
		tt, err := sim.LoadTransitionTable(validateTransitionsFile)
		if err != nil {
			logrus.Fatalf("validation failed: %v", err)
		}

		fmt.Printf("states          : %d\n", tt.NumStates())
		fmt.Printf("transitions     : %d\n", len(tt.Transitions))
		fmt.Printf("has visit state : %v\n", tt.HasB)
		fmt.Println()

		for s := 0; s < tt.NumStates(); s++ {
			sid := sim.StateID(s)
			b, e := tt.Outgoing(sid)
			if b == e {
				fmt.Printf("  %-16s absorbing\n", tt.StateName(sid))
				continue
			}
			fmt.Printf("  %-16s transient  dtype=%s  outgoing=%d\n",
				tt.StateName(sid), tt.StateDType[sid], e-b)
		}
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateTransitionsFile, "transitions", "", "Path to the ';'-delimited transition table file")
	_ = validateCmd.MarkFlagRequired("transitions")
	rootCmd.AddCommand(validateCmd)
}
