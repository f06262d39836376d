package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grindlemire/go-constraint/internal/config"
	"github.com/grindlemire/go-constraint/internal/layout"
)

type measurement struct {
	Orientation string `json:"orientation"`
	ForSize     int    `json:"for_size"`
	Minimum     int    `json:"minimum"`
	Natural     int    `json:"natural"`
}

func newMeasureCmd() *cobra.Command {
	var (
		orientation string
		forSize     int
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "measure FILE",
		Short: "Print the minimum and natural size of a layout along one axis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := layout.ParseOrientation(orientation)
			if err != nil {
				return err
			}
			f, err := config.Load(args[0])
			if err != nil {
				return err
			}
			b, err := config.Build(f, nil)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			m := measurement{Orientation: o.String(), ForSize: forSize}
			m.Minimum, m.Natural = b.Layout.Measure(o, forSize)

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(m)
			}
			fmt.Fprintf(out, "%s minimum %d natural %d\n", m.Orientation, m.Minimum, m.Natural)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&orientation, "orientation", "o", "horizontal", "axis to measure: horizontal or vertical")
	f.IntVar(&forSize, "for-size", -1, "fix the opposite dimension (-1 leaves it free)")
	f.BoolVar(&jsonOut, "json", false, "print JSON")
	return cmd
}
