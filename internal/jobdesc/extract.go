package jobdesc

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// MinLength is the shortest extracted text accepted as a job description.
const MinLength = 200

// ContainerSelectors are tried in order; the first with visible text wins.
var ContainerSelectors = []string{
	"#jobDescriptionText",
	".jobs-description",
	`[data-automation-id="jobPostingDescription"]`,
	"#job-description",
	".job-description",
	".jobDescription",
	"#job_description",
	".job_description",
	".posting-page",
	"#content .job__description",
	".job-details",
	".job-body",
	".description",
}

var structuralFallbacks = []string{"main", "article", "body"}

const noiseSelector = "script, style, nav, header, footer, aside, form, button, noscript, svg, iframe"

var blockElements = map[string]bool{
	"address": true, "article": true, "blockquote": true, "dd": true, "div": true,
	"dl": true, "dt": true, "fieldset": true, "figcaption": true, "figure": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"hr": true, "li": true, "main": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "td": true, "th": true, "tr": true, "ul": true,
}

// Extract pulls the job posting text out of an HTML document.
func Extract(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", errors.Wrap(err, "parse html")
	}
	doc.Find(noiseSelector).Remove()

	text := Clean(blockText(pickContainer(doc)))
	if utf8.RuneCountInString(text) < MinLength {
		return "", errors.Wrapf(ErrTooShort, "%d characters", utf8.RuneCountInString(text))
	}
	return text, nil
}

func pickContainer(doc *goquery.Document) *goquery.Selection {
	for _, group := range [][]string{ContainerSelectors, structuralFallbacks} {
		for _, selector := range group {
			sel := doc.Find(selector).First()
			if sel.Length() > 0 && strings.TrimSpace(sel.Text()) != "" {
				return sel
			}
		}
	}
	return doc.Selection
}

func blockText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		walk(n, &b)
	}
	return b.String()
}

func walk(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.Data == "br" {
			b.WriteByte('\n')
			return
		}
	}
	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, b)
	}
	if block {
		b.WriteByte('\n')
	}
}

// Clean trims lines, drops lines of three characters or fewer and collapses
// consecutive duplicates.
func Clean(raw string) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if utf8.RuneCountInString(line) <= 3 {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == line {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
