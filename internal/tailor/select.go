package tailor

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"resume-optimizer/internal/selector"
)

func (r *runner) selectCommand() *cobra.Command {
	var (
		jdSource    string
		bulletsFile string
		count       int
		label       string
	)
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select bullets from one pool for a job description",
		Example: `  tailor select --jd jd.txt --bullets acme.txt --count 4
  tailor select --jd https://example.com/jobs/123 --bullets acme.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jd, err := r.description(cmd, jdSource)
			if err != nil {
				return err
			}
			pool, err := ReadBullets(bulletsFile)
			if err != nil {
				return err
			}
			sel := selector.New(r.completer()).Select(cmd.Context(), selector.Request{
				JobDescription: jd,
				Pool:           pool,
				TargetCount:    count,
				Context:        label,
			})
			enc := json.NewEncoder(out(cmd))
			enc.SetIndent("", "  ")
			return enc.Encode(sel)
		},
	}
	cmd.Flags().StringVar(&jdSource, "jd", "", "Job description file or URL")
	cmd.Flags().StringVar(&bulletsFile, "bullets", "", "File with one bullet per line")
	cmd.Flags().IntVar(&count, "count", selector.DefaultTargetCount, "Approximate number of bullets to select")
	cmd.Flags().StringVar(&label, "context", "", "Label for the pool, e.g. \"Position: PM at Acme\"")
	_ = cmd.MarkFlagRequired("jd")
	_ = cmd.MarkFlagRequired("bullets")
	return cmd
}
