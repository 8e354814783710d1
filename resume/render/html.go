// Package render assembles resume HTML and prints it to PDF.
package render

import (
	"bytes"
	"html/template"
	"strings"

	"resume-optimizer/resume/model"
)

const resumeTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Profile.FullName}}</title>
<style>{{.CSS}}</style>
</head>
<body>
<h1>{{.Profile.FullName}}</h1>
<p class="contact">{{.Profile.Email}} | {{.Profile.Phone}} | {{.Profile.LinkedInURL}} | {{.Profile.Location}}</p>
<h2>Professional Experience</h2>
{{- range .Experiences}}
<div class="experience">
<div class="role-line"><span class="company">{{.Company}}</span><span class="dates">{{.DateRange}}</span></div>
<div class="title">{{.Title}}</div>
{{- with .Bullets}}
<ul>
{{- range .}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- end}}
</div>
{{- end}}
<h2>Education</h2>
{{- range .Profile.Education}}
<p class="education">{{.Degree}} - {{.School}} ({{.Year}})</p>
{{- end}}
<h2>Skills</h2>
<p class="skills">{{.Skills}}</p>
</body>
</html>
`

var tmpl = template.Must(template.New("resume").Parse(resumeTemplate))

type experienceView struct {
	model.Experience
	Bullets []string
}

type resumeView struct {
	CSS         template.CSS
	Profile     model.Profile
	Experiences []experienceView
	Skills      string
}

// RenderHTML assembles the resume document. Every value is HTML-escaped.
func RenderHTML(r model.Resume) (string, error) {
	view := resumeView{
		CSS:         template.CSS(printCSS()),
		Profile:     r.Profile,
		Experiences: make([]experienceView, 0, len(r.Experiences)),
		Skills:      strings.Join(r.Profile.Skills, ", "),
	}
	for _, exp := range r.Experiences {
		view.Experiences = append(view.Experiences, experienceView{
			Experience: exp,
			Bullets:    r.Bullets(exp.ID),
		})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
