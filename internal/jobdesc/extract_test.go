package jobdesc

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func posting(lines int) string {
	var b strings.Builder
	for i := 0; i < lines; i++ {
		b.WriteString("<p>Own the roadmap for payments and coordinate delivery across teams ")
		b.WriteString(strings.Repeat("x", i))
		b.WriteString("</p>")
	}
	return b.String()
}

func TestExtractPrefersKnownContainer(t *testing.T) {
	page := `<html><body>
<nav>Home Jobs About</nav>
<div class="description">generic description block that should lose to the specific container</div>
<div id="jobDescriptionText">` + posting(4) + `<script>alert(1)</script></div>
<footer>Copyright</footer>
</body></html>`

	text, err := Extract(strings.NewReader(page))
	require.NoError(t, err)
	assert.Contains(t, text, "Own the roadmap")
	assert.NotContains(t, text, "generic description")
	assert.NotContains(t, text, "alert")
	assert.NotContains(t, text, "Home Jobs")
	assert.Len(t, strings.Split(text, "\n"), 4)
}

func TestExtractSkipsBlankContainers(t *testing.T) {
	page := `<html><body><div class="jobs-description">   </div><main>` + posting(5) + `</main></body></html>`

	text, err := Extract(strings.NewReader(page))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "Own the roadmap"))
}

func TestExtractTooShort(t *testing.T) {
	page := `<html><body><div id="job-description"><p>Short posting text.</p></div></body></html>`

	_, err := Extract(strings.NewReader(page))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooShort))
}

func TestExtractThresholdIsInclusive(t *testing.T) {
	exact := strings.Repeat("a", MinLength)
	text, err := Extract(strings.NewReader("<html><body><p>" + exact + "</p></body></html>"))
	require.NoError(t, err)
	assert.Equal(t, exact, text)

	_, err = Extract(strings.NewReader("<html><body><p>" + exact[1:] + "</p></body></html>"))
	assert.True(t, errors.Is(err, ErrTooShort))
}

func TestClean(t *testing.T) {
	raw := "  Responsibilities  \n\nabc\nResponsibilities\nResponsibilities\n  Build   things \n-\n"
	assert.Equal(t, "Responsibilities\nBuild things", Clean(raw))
}
