package wiki

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
)

const blocks = "p, li, dd, h1, h2, h3, h4, h5, h6"

// PlainText renders an extract as paragraphs separated by blank lines.
func PlainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	var paragraphs []string
	doc.Find(blocks).Each(func(_ int, s *goquery.Selection) {
		// a list item inside a paragraph is already part of it
		if s.ParentsFiltered(blocks).Length() > 0 {
			return
		}

		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}

		if goquery.NodeName(s) == "li" {
			text = "• " + text
		}

		paragraphs = append(paragraphs, text)
	})

	if len(paragraphs) == 0 {
		return strings.Join(strings.Fields(doc.Text()), " "), nil
	}

	return strings.Join(lo.Compact(paragraphs), "\n\n"), nil
}
