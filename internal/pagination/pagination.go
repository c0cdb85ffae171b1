package pagination

import (
	"math"
	"strconv"
	"strings"
)

// DefaultPageSize is the number of rows shown before the user picks another size
const DefaultPageSize = 20

// SizeOptions are the quick page-size choices offered next to the table
var SizeOptions = []int{10, 20, 30}

// ParsePage resolves the page number carried in a URL segment.
// Empty, non-numeric and non-positive segments resolve to page 1.
func ParsePage(segment string) int {
	page, ok := ParsePositive(segment)
	if !ok {
		return 1
	}
	return page
}

// ParsePositive parses user input as a positive base-10 integer
func ParsePositive(input string) (int, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, false
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Path returns the canonical URL path for a page
func Path(page int) string {
	if page < 1 {
		page = 1
	}
	return "/page/" + strconv.Itoa(page)
}

// Range returns the 1-based record positions [first, last] covered by a page.
// Positions past math.MaxInt saturate.
func Range(page, size int) (first, last int) {
	if page < 1 || size < 1 {
		return 1, 0
	}
	first = saturatingAdd(Offset(page, size), 1)
	last = saturatingMul(page, size)
	return first, last
}

// Offset returns the number of records preceding a page, saturating at math.MaxInt
func Offset(page, size int) int {
	if page < 1 || size < 1 {
		return 0
	}
	return saturatingMul(page-1, size)
}

func saturatingMul(a, b int) int {
	if a > 0 && b > math.MaxInt/a {
		return math.MaxInt
	}
	return a * b
}

func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// Controller translates navigation intents into canonical paths.
// Each method reports the path to navigate to and whether navigation happens.
type Controller struct {
	CurrentPage int
}

// NewController builds a controller for the page resolved from a URL segment
func NewController(segment string) Controller {
	return Controller{CurrentPage: ParsePage(segment)}
}

// Next always moves forward; the remote source answers past its last page with no rows.
// The last representable page stays put.
func (c Controller) Next() (string, bool) {
	return Path(saturatingAdd(c.current(), 1)), true
}

func (c Controller) Previous() (string, bool) {
	if c.current() <= 1 {
		return "", false
	}
	return Path(c.current() - 1), true
}

// GoTo navigates to an explicitly entered page number
func (c Controller) GoTo(input string) (string, bool) {
	page, ok := ParsePositive(input)
	if !ok {
		return "", false
	}
	return Path(page), true
}

func (c Controller) current() int {
	if c.CurrentPage < 1 {
		return 1
	}
	return c.CurrentPage
}
