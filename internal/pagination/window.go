// Package pagination builds the abbreviated page list shown in the catalog
// pagination control. Kept intentionally small; which page is current and how
// pages map to URLs belongs to higher layers.
package pagination

// Ellipsis marks a gap between two page numbers in a window.
// Entries with Page == Ellipsis are rendered as "…"; all others are 1-based
// page numbers.
const Ellipsis = 0

// Entry is one slot of a page window: a page number, or Ellipsis.
type Entry int

// IsEllipsis reports whether the entry is a gap marker.
func (e Entry) IsEllipsis() bool { return e == Ellipsis }

// maxPlain is the largest page count rendered without abbreviation. Seven
// slots is also the upper bound on the window length, so the control never
// grows past that regardless of the total.
const maxPlain = 7

// siblings is the fixed radius of pages kept around the current one.
const siblings = 1

// Window returns the pages to render for a control on page current out of
// total. The first and last page are always present as anchors; at most one
// ellipsis separates each anchor from the sibling range. The function is
// total over all integer inputs and never clamps current — an out-of-range
// current only shifts which pages count as siblings.
func Window(current, total int) []Entry {
	if total <= maxPlain {
		pages := make([]Entry, 0, total)
		for i := 1; i <= total; i++ {
			pages = append(pages, Entry(i))
		}
		return pages
	}

	rangeStart := max(2, current-siblings)
	rangeEnd := min(total-1, current+siblings)

	pages := make([]Entry, 0, maxPlain)
	pages = append(pages, 1)
	if rangeStart > 2 {
		pages = append(pages, Ellipsis)
	}
	for i := rangeStart; i <= rangeEnd; i++ {
		pages = append(pages, Entry(i))
	}
	if rangeEnd < total-1 {
		pages = append(pages, Ellipsis)
	}
	pages = append(pages, Entry(total))
	return pages
}
