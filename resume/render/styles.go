package render

import "fmt"

const (
	HeadingColor = "1F2937"
	NameColor    = "111111"
	MutedColor   = "4B5563"
	HeadingSize  = 12
	NameSize     = 20
	BodySize     = 10
)

// printCSS is embedded in every resume. Page margins come from the PDF print
// settings, so @page only fixes the paper size.
func printCSS() string {
	return fmt.Sprintf(`
@page { size: Letter; margin: 0; }
* { box-sizing: border-box; }
body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: %dpt; line-height: 1.3; color: #%s; margin: 0; }
h1 { font-size: %dpt; color: #%s; margin: 0 0 2pt 0; text-align: center; }
.contact { text-align: center; color: #%s; margin: 0 0 8pt 0; }
h2 { font-size: %dpt; color: #%s; text-transform: uppercase; border-bottom: 1px solid #%s; margin: 10pt 0 4pt 0; padding-bottom: 1pt; }
.experience { margin-bottom: 6pt; page-break-inside: avoid; }
.role-line { display: flex; justify-content: space-between; font-weight: bold; }
.title { font-style: italic; }
.dates { font-weight: normal; color: #%s; }
ul { margin: 2pt 0 0 0; padding-left: 14pt; }
li { margin-bottom: 1pt; }
.education, .skills { margin: 0 0 2pt 0; }
`, BodySize, NameColor, NameSize, NameColor, MutedColor, HeadingSize, HeadingColor, HeadingColor, MutedColor)
}
