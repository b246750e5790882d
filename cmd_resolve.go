package main

import (
	"fmt"
	"strings"

	"github.com/epeers/krxdash/internal/region"
	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <address>...",
		Short: "Resolve addresses to provinces",
		Long: `Resolve each address to one of the 17 provinces, printing the map center
and zoom used for the headquarters marker.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := region.Default()
			out := cmd.OutOrStdout()
			for _, raw := range args {
				res := resolver.Resolve(raw)
				name := res.Canonical
				if !res.Resolved {
					name = "(unresolved)"
				}
				fmt.Fprintf(out, "%s\t%s\t%.4f,%.4f\tzoom=%d\n", strings.TrimSpace(raw), name, res.Latitude, res.Longitude, res.Zoom)
			}
			return nil
		},
	}
}
