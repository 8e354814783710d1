// Package tailor implements the tailor command line tool, which builds a
// tailored resume from a YAML career file without a database.
package tailor

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"resume-optimizer/internal/bootstrap"
	"resume-optimizer/internal/jobdesc"
	"resume-optimizer/internal/llm"
	"resume-optimizer/internal/shared/config"
	"resume-optimizer/internal/shared/telemetry"
	"resume-optimizer/resume/render"
)

// Deps are the collaborators the commands use. Nil fields are built from config.
type Deps struct {
	Config    *config.Config
	Completer llm.Completer
	Fetcher   jobdesc.Source
	Renderer  render.Renderer
}

type runner struct {
	deps    Deps
	verbose bool
}

// NewRootCommand builds the command tree.
func NewRootCommand(deps Deps) *cobra.Command {
	r := &runner{deps: deps}
	root := &cobra.Command{
		Use:   "tailor",
		Short: "Build a one-page resume tailored to a job description",
		Long: `tailor selects the most relevant bullets from each position in your
career file for a job description and renders a Letter-size PDF.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if r.verbose {
				level = "info"
			}
			telemetry.Configure(cmd.ErrOrStderr(), level)
		},
	}
	root.PersistentFlags().BoolVarP(&r.verbose, "verbose", "v", false, "Verbose output")

	root.AddCommand(r.generateCommand(), r.fetchCommand(), r.selectCommand())
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand(Deps{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func (r *runner) config() config.Config {
	if r.deps.Config == nil {
		cfg := config.Load()
		r.deps.Config = &cfg
	}
	return *r.deps.Config
}

func (r *runner) completer() llm.Completer {
	if r.deps.Completer == nil {
		r.deps.Completer = bootstrap.BuildCompleter(r.config())
	}
	return r.deps.Completer
}

func (r *runner) fetcher() jobdesc.Source {
	if r.deps.Fetcher == nil {
		r.deps.Fetcher = bootstrap.BuildFetcher(r.config(), nil)
	}
	return r.deps.Fetcher
}

func (r *runner) renderer() render.Renderer {
	if r.deps.Renderer == nil {
		cfg := r.config()
		r.deps.Renderer = render.NewPDFRenderer(cfg.ChromePath, cfg.RenderTimeout)
	}
	return r.deps.Renderer
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
