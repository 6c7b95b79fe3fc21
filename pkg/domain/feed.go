package domain

import "time"

// ParsedFeed is a fetched RSS/Atom feed reduced to its item links
type ParsedFeed struct {
	Title string
	Link  string
	Items []ParsedItem
}

// ParsedItem is a single feed entry
type ParsedItem struct {
	Title     string
	Link      string
	Published *time.Time
}

// Links returns non-empty item links in feed order, without duplicates
func (f ParsedFeed) Links() []string {
	seen := make(map[string]bool, len(f.Items))
	res := make([]string, 0, len(f.Items))
	for _, item := range f.Items {
		if item.Link == "" || seen[item.Link] {
			continue
		}
		seen[item.Link] = true
		res = append(res, item.Link)
	}
	return res
}
