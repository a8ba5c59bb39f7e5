package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) View() string {
	if !a.ready {
		return ""
	}
	if a.cfg.Store.Len() == 0 {
		var rows []string
		if a.cfg.Controller.Loading() {
			rows = append(rows, HelpStyle.Render(a.spin.View()+" Loading feed..."))
		} else {
			rows = append(rows, HelpStyle.Render("Feed is empty. Press j to retry."))
		}
		if a.notice != "" {
			rows = append(rows, NoticeStyle.Render(a.notice))
		}
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	item, ok := a.cfg.Store.At(a.cursor)
	if !ok {
		return ""
	}
	card := a.renderCard(item, a.width, a.layout.CardHeight())

	rows := []string{card}
	if a.notice != "" {
		rows = append(rows, NoticeStyle.Render(a.notice))
	}
	rows = append(rows, a.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a *App) renderStatusBar() string {
	left := StatusBarText.Render(fmt.Sprintf(" %d/%d ", a.cursor+1, a.cfg.Store.Len()))

	var hints []string
	hint := func(key, desc string) {
		hints = append(hints, StatusBarKey.Render(key)+StatusBarText.Render(" "+desc))
	}
	hint("j/k", "scroll")
	hint("space", "pause")
	hint("m", "mute")
	hint("l", "like")
	hint("s", "share")
	hint("q", "quit")
	middle := strings.Join(hints, StatusBarText.Render("  "))

	right := ""
	switch {
	case a.cfg.Controller.Loading():
		right = a.spin.View() + StatusBarText.Render(" loading")
	case !a.cfg.Store.HasMore() && a.cursor == a.cfg.Store.Len()-1:
		right = EndStyle.Render("you're all caught up")
	}

	bar := left + middle
	gap := a.width - lipgloss.Width(bar) - lipgloss.Width(right) - StatusBar.GetHorizontalPadding()
	if gap < 1 {
		gap = 1
	}
	return StatusBar.Width(a.width).Render(bar + strings.Repeat(" ", gap) + right)
}
