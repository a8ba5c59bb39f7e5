package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/thuanng/reel/internal/feed"
)

// progresser is implemented by handles that can report playback position.
type progresser interface {
	Position() time.Duration
	Duration() time.Duration
}

// renderCard draws one video card at the given outer dimensions.
func (a *App) renderCard(item feed.Item, width, height int) string {
	active := a.cfg.Coordinator.ActiveID() == item.ID
	border := CardBorder
	if active {
		border = ActiveCardBorder
	}

	innerW := width - border.GetHorizontalFrameSize()
	innerH := height - border.GetVerticalFrameSize()
	if innerW < 10 {
		innerW = 10
	}
	if innerH < 4 {
		innerH = 4
	}

	var lines []string
	lines = append(lines, truncate(CardTitle.Render(item.Title), innerW))
	lines = append(lines, truncate(CreatorName.Render("@"+item.Creator.Name), innerW))
	lines = append(lines, "")

	bodyRows := innerH - len(lines) - 3
	lines = append(lines, a.renderStage(item, active, innerW, bodyRows)...)

	lines = append(lines, a.renderProgress(item, innerW))
	lines = append(lines, truncate(CardDescription.Render(item.Description), innerW))
	lines = append(lines, a.renderMeta(item, innerW))

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return border.Width(innerW + border.GetHorizontalPadding()).Render(body)
}

// renderStage fills the middle of the card: a play marker when active, a
// poster placeholder otherwise.
func (a *App) renderStage(item feed.Item, active bool, width, rows int) []string {
	if rows < 1 {
		rows = 1
	}
	out := make([]string, rows)
	mid := rows / 2
	for i := range out {
		out[i] = ""
	}
	var marker string
	if active {
		if h, ok := a.cfg.Handles.Get(item.ID); ok && h.Paused() {
			marker = "▶ paused"
		} else {
			marker = "◼ playing"
		}
		out[mid] = center(CardMeta.Render(marker), width)
	} else {
		out[mid] = center(PosterFill.Render("· · ·"), width)
	}
	return out
}

func (a *App) renderProgress(item feed.Item, width int) string {
	h, ok := a.cfg.Handles.Get(item.ID)
	if !ok {
		return ProgressRest.Render(strings.Repeat("─", width))
	}
	p, ok := h.(progresser)
	if !ok || p.Duration() <= 0 {
		return ProgressRest.Render(strings.Repeat("─", width))
	}
	frac := float64(p.Position()) / float64(p.Duration())
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	played := int(frac * float64(width))
	return ProgressPlayed.Render(strings.Repeat("━", played)) +
		ProgressRest.Render(strings.Repeat("─", width-played))
}

func (a *App) renderMeta(item feed.Item, width int) string {
	count := item.ReactionCount
	heart := "♡"
	style := CardMeta
	if a.liked[item.ID] {
		count++
		heart = "♥"
		style = LikedCount
	}
	likes := style.Render(fmt.Sprintf("%s %d", heart, count))

	mute := ""
	if a.cfg.Coordinator.ActiveID() == item.ID {
		if a.cfg.Coordinator.Muted() {
			mute = CardMeta.Render("muted")
		} else {
			mute = CardMeta.Render("sound on")
		}
	}
	gap := width - lipgloss.Width(likes) - lipgloss.Width(mute)
	if gap < 1 {
		gap = 1
	}
	return likes + strings.Repeat(" ", gap) + mute
}

// truncate trims a styled string to a display width, appending an ellipsis
// when anything was cut.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width-1, "…")
}

func center(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}
