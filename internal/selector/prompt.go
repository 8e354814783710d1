package selector

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the selection prompt for one bullet pool.
func BuildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("You are a professional resume writer tailoring experience bullets to a specific job application.\n\n")

	b.WriteString("JOB DESCRIPTION:\n")
	b.WriteString(strings.TrimSpace(req.JobDescription))
	b.WriteString("\n\n")

	b.WriteString("AVAILABLE EXPERIENCE BULLETS")
	if ctx := strings.TrimSpace(req.Context); ctx != "" {
		fmt.Fprintf(&b, " (%s)", ctx)
	}
	b.WriteString(":\n")
	for _, bullet := range req.Pool {
		fmt.Fprintf(&b, "- %s\n", bullet)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "TASK:\nSelect and reword approximately %d bullets from the list above that are most relevant to this job.\n\n", req.TargetCount)

	b.WriteString("GUIDELINES:\n")
	b.WriteString("1. Prefer bullets that match the job's requirements and keywords.\n")
	b.WriteString("2. Reword bullets to emphasize the skills the job description asks for.\n")
	b.WriteString("3. Start every bullet with a strong action verb.\n")
	b.WriteString("4. Keep quantified impact. Where a bullet has none, add a plausible estimate.\n")
	b.WriteString("5. Keep each bullet to one or two lines so the resume fits on one page.\n\n")

	b.WriteString("Reply with a JSON object of exactly this shape:\n")
	b.WriteString("{\"bullets\": [\"first bullet\", \"second bullet\"]}\n\n")
	b.WriteString("Return ONLY the JSON object, with no other text.")
	return b.String()
}
