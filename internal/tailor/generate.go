package tailor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"resume-optimizer/internal/experiences"
	"resume-optimizer/internal/generatedresumes"
	"resume-optimizer/internal/generation"
	"resume-optimizer/internal/profiles"
	"resume-optimizer/internal/selector"
	"resume-optimizer/internal/shared/storage/object/local"
	"resume-optimizer/internal/targetjobs"
	"resume-optimizer/internal/usage"
)

const cliUser = "local"

type generateOptions struct {
	profilePath string
	jdSource    string
	outDir      string
	company     string
	title       string
	brand       string
	count       int
}

func (r *runner) generateCommand() *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a tailored resume PDF",
		Example: `  tailor generate --profile career.yaml --jd jd.txt --company "Acme Corp" --out ./out
  tailor generate --profile career.yaml --jd https://example.com/jobs/123 --company Acme --count 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runGenerate(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.profilePath, "profile", "", "YAML career file")
	cmd.Flags().StringVar(&opts.jdSource, "jd", "", "Job description file or URL")
	cmd.Flags().StringVar(&opts.outDir, "out", ".", "Output directory")
	cmd.Flags().StringVar(&opts.company, "company", "", "Company the resume targets")
	cmd.Flags().StringVar(&opts.title, "title", "", "Role title")
	cmd.Flags().StringVar(&opts.brand, "brand", "", "File name prefix (default from BRAND_PREFIX)")
	cmd.Flags().IntVar(&opts.count, "count", 0, "Approximate bullets per position (default from TARGET_BULLET_COUNT)")
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("jd")
	return cmd
}

func (r *runner) runGenerate(cmd *cobra.Command, opts generateOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := r.config()
	if opts.brand == "" {
		opts.brand = cfg.BrandPrefix
	}
	if opts.count <= 0 {
		opts.count = cfg.TargetBulletCount
	}
	if opts.company == "" {
		opts.company = "Company"
	}
	if opts.title == "" {
		opts.title = "Role"
	}

	doc, err := LoadDocument(opts.profilePath)
	if err != nil {
		return err
	}

	scratch, err := os.MkdirTemp("", "tailor-")
	if err != nil {
		return errors.Wrap(err, "create scratch dir")
	}
	defer os.RemoveAll(scratch)

	profileSvc := profiles.NewService(profiles.NewMemoryRepo())
	doc.Profile.UserID = cliUser
	if _, err := profileSvc.Replace(ctx, doc.Profile); err != nil {
		return err
	}
	expSvc := experiences.NewService(experiences.NewMemoryRepo())
	for _, e := range doc.Experiences {
		exp, err := expSvc.AddExperience(ctx, cliUser, e.input())
		if err != nil {
			return errors.Wrapf(err, "experience %q", e.Company)
		}
		if len(e.Bullets) == 0 {
			continue
		}
		if _, err := expSvc.AddBullets(ctx, cliUser, exp.ID, e.Bullets); err != nil {
			return errors.Wrapf(err, "bullets for %q", e.Company)
		}
	}

	jobSvc := targetjobs.NewService(targetjobs.NewMemoryRepo(), nil, nil)
	in := targetjobs.AddInput{Company: opts.company, Title: opts.title}
	if isURL(opts.jdSource) {
		in.URL = opts.jdSource
	} else {
		in.Description, err = readDescription(opts.jdSource)
		if err != nil {
			return err
		}
	}
	added, err := jobSvc.Add(ctx, cliUser, in)
	if err != nil {
		return err
	}

	store := local.New(filepath.Join(scratch, "store"))
	orch := &generation.Orchestrator{
		Jobs:        jobSvc,
		Profiles:    profileSvc,
		Experiences: expSvc,
		Quota:       usage.NewService(1),
		Fetcher:     r.fetcher(),
		Selector:    selector.New(r.completer()),
		Renderer:    r.renderer(),
		Store:       store,
		Resumes:     generatedresumes.NewMemoryRepo(),
		Options: generation.Options{
			BrandPrefix: opts.brand,
			TargetCount: opts.count,
			TempDir:     scratch,
		},
	}
	result, err := orch.Generate(ctx, cliUser, added.Job.ID)
	if err != nil {
		var genErr *generation.Error
		if errors.As(err, &genErr) {
			return errors.New(genErr.Message() + " (" + genErr.Err.Error() + ")")
		}
		return err
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return errors.Wrap(err, "create output dir")
	}
	base := filepath.Join(opts.outDir, result.Resume.Filename)
	if err := os.WriteFile(base+".html", []byte(result.Resume.HTML), 0o644); err != nil {
		return errors.Wrap(err, "write html")
	}
	if err := copyArtifact(ctx, store, result.Resume.StorageKey, base+".pdf"); err != nil {
		return err
	}

	w := out(cmd)
	fmt.Fprintf(w, "Wrote %s.pdf (%d page(s))\n", base, result.Resume.PageCount)
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	return nil
}

func (r *runner) description(cmd *cobra.Command, source string) (string, error) {
	if isURL(source) {
		return r.fetcher().Fetch(cmd.Context(), source)
	}
	return readDescription(source)
}

func readDescription(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", errors.Errorf("%s is empty", path)
	}
	return text, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func copyArtifact(ctx context.Context, store *local.Store, key, dest string) error {
	rc, err := store.Open(ctx, key)
	if err != nil {
		return errors.Wrap(err, "open rendered pdf")
	}
	defer rc.Close()
	f, err := os.Create(dest)
	if err != nil {
		return errors.Wrap(err, "create pdf")
	}
	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		return errors.Wrap(err, "write pdf")
	}
	return f.Close()
}
