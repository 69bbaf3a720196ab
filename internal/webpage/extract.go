package webpage

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkromann/ugc-builder/internal/errors"
)

// MaxTextLength caps extracted text to keep the downstream prompt inside the model's
// token budget. Roughly 4k tokens.
const MaxTextLength = 15000

// MinTextLength is the threshold below which a page is considered to have no usable
// content, e.g. a page that is mostly a cookie-consent banner.
const MinTextLength = 50

var whitespaceRuns = regexp.MustCompile(`\s\s+`)

// ExtractText converts raw HTML into plain text. Script and style contents are
// removed entirely. Text is taken from the first non-empty container out of article,
// main and body, whitespace runs are collapsed to single spaces, and the result is
// truncated to MaxTextLength with a trailing ellipsis when it exceeds the cap.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", errors.Wrap(err, "parse html")
	}

	doc.Find("script, style").Remove()

	text := doc.Find("article").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Find("main").Text()
	}
	if strings.TrimSpace(text) == "" {
		text = doc.Find("body").Text()
	}

	text = strings.TrimSpace(whitespaceRuns.ReplaceAllString(text, " "))

	if len(text) > MaxTextLength {
		// The cap is in bytes; back up so a multibyte rune is never split in half.
		cut := MaxTextLength
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "..."
	}
	return text, nil
}
