package ui

import "github.com/thuanng/reel/internal/viewport"

// Layout maps feed positions to document row regions. One card fills the
// content area, with a one-row gap between cards, mirroring the original
// feed's scroll-snap behaviour. It is shared by pointer between the app
// model and the feed controller's region callback, so resizes are seen by
// both.
type Layout struct {
	cardHeight int
	gap        int
}

// NewLayout creates a layout with no known terminal size yet.
func NewLayout() *Layout {
	return &Layout{cardHeight: 24, gap: 1}
}

// Resize sets the card height from the terminal content height.
func (l *Layout) Resize(contentHeight int) {
	if contentHeight < 6 {
		contentHeight = 6
	}
	l.cardHeight = contentHeight
}

// CardHeight returns the current card height in rows.
func (l *Layout) CardHeight() int { return l.cardHeight }

// RegionFor returns the document region of the card at a feed position.
func (l *Layout) RegionFor(index int) viewport.Region {
	return viewport.Region{
		Top:    index * (l.cardHeight + l.gap),
		Height: l.cardHeight,
	}
}

// ScrollTo returns the document scroll offset that centers a feed position.
func (l *Layout) ScrollTo(index int) int {
	return index * (l.cardHeight + l.gap)
}

// MarginCards converts a row margin to a whole number of cards.
func (l *Layout) MarginCards(rows int) int {
	m := rows / (l.cardHeight + l.gap)
	if m < 1 {
		m = 1
	}
	return m
}
