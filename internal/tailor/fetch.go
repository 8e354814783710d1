package tailor

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (r *runner) fetchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <url>",
		Short: "Print the job description extracted from a posting URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := r.fetcher().Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out(cmd), text)
			return err
		},
	}
}
