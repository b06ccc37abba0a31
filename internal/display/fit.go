package display

import "image"

// MinBudget is the smallest lores budget FitBudget will return.
var MinBudget = image.Pt(160, 120)

// FitBudget shrinks budget so that a canvas built around it, with the zoom
// column of zoomSize, the margins and chrome pixels of window decoration and
// status bar, fits on a screen of the given size. The result never grows
// beyond budget nor drops below MinBudget.
func FitBudget(screen, budget image.Point, zoomSize, margin, chrome int) image.Point {
	avail := image.Pt(screen.X-zoomSize-2*margin, screen.Y-2*margin-chrome)
	out := image.Pt(min(budget.X, avail.X), min(budget.Y, avail.Y))
	out.X = max(out.X, min(MinBudget.X, budget.X))
	out.Y = max(out.Y, min(MinBudget.Y, budget.Y))
	return out
}
