package webpage

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_stripsScriptAndStyle(t *testing.T) {
	html := `<html><head><style>body { color: hotpink; }</style></head>
	<body><script>var tracking = "secret";</script><p>Visible paragraph text.</p></body></html>`

	text, err := ExtractText(html)
	require.NoError(t, err)

	assert.Equal(t, "Visible paragraph text.", text)
	assert.NotContains(t, text, "hotpink")
	assert.NotContains(t, text, "tracking")
}

func TestExtractText_prefersArticleOverBody(t *testing.T) {
	html := `<html><body>
	<nav>Menu Menu Menu</nav>
	<article>The actual product story lives here.</article>
	<footer>Footer junk</footer>
	</body></html>`

	text, err := ExtractText(html)
	require.NoError(t, err)
	assert.Equal(t, "The actual product story lives here.", text)
}

func TestExtractText_fallsBackToMainThenBody(t *testing.T) {
	withMain := `<html><body><main>Main content only.</main><aside>ads</aside></body></html>`
	text, err := ExtractText(withMain)
	require.NoError(t, err)
	assert.Equal(t, "Main content only.", text)

	bodyOnly := `<html><body><p>Whole body fallback.</p></body></html>`
	text, err = ExtractText(bodyOnly)
	require.NoError(t, err)
	assert.Equal(t, "Whole body fallback.", text)
}

func TestExtractText_collapsesWhitespace(t *testing.T) {
	html := "<html><body><p>first\n\n\t  second</p>\n<p>third</p></body></html>"

	text, err := ExtractText(html)
	require.NoError(t, err)
	assert.Equal(t, "first second third", text)
}

func TestExtractText_capsLength(t *testing.T) {
	long := strings.Repeat("a", MaxTextLength+5000)
	html := fmt.Sprintf("<html><body><article>%s</article></body></html>", long)

	text, err := ExtractText(html)
	require.NoError(t, err)

	assert.Len(t, text, MaxTextLength+len("..."))
	assert.True(t, strings.HasSuffix(text, "..."))
}

func TestExtractText_capNeverSplitsRunes(t *testing.T) {
	// One leading ASCII byte shifts every two-byte ø off the even byte offsets, so
	// the cap lands in the middle of a rune.
	long := "x" + strings.Repeat("ø", MaxTextLength)
	html := fmt.Sprintf("<html><body><article>%s</article></body></html>", long)

	text, err := ExtractText(html)
	require.NoError(t, err)

	assert.True(t, utf8.ValidString(text))
	assert.True(t, strings.HasSuffix(text, "ø..."))
	assert.Equal(t, MaxTextLength-1+len("..."), len(text))
}

func TestExtractText_underCapIsUntouched(t *testing.T) {
	html := "<html><body><article>short</article></body></html>"
	text, err := ExtractText(html)
	require.NoError(t, err)
	assert.Equal(t, "short", text)
}
