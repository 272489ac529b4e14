package catalog

import "fmt"

// Selection is a requested (item, color) pair to render as one catalog page.
// Order is caller-significant: it determines final page order.
type Selection struct {
	Item  string `json:"item"`
	Color string `json:"color"`
}

// String returns the "item - color" display form used in error messages
func (s Selection) String() string {
	return fmt.Sprintf("%s - %s", s.Item, s.Color)
}

// PageOutcome records the per-selection result of a page generation attempt.
// Skipped pages are excluded from the final document but never fail the job.
type PageOutcome struct {
	Selection Selection
	PageURL   string
	Skipped   bool
	Reason    string
}

// SkippedOutcomes filters the outcomes down to the skipped ones
func SkippedOutcomes(outcomes []PageOutcome) []PageOutcome {
	var skipped []PageOutcome
	for _, o := range outcomes {
		if o.Skipped {
			skipped = append(skipped, o)
		}
	}
	return skipped
}

// PageURLs returns the URLs of successfully rendered pages in input order
func PageURLs(outcomes []PageOutcome) []string {
	urls := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		if !o.Skipped {
			urls = append(urls, o.PageURL)
		}
	}
	return urls
}
