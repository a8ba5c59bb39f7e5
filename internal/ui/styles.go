package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("205") // Pink
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Light pink
	colorLike      = lipgloss.Color("78")  // Green
	colorError     = lipgloss.Color("196") // Red
)

// CardBorder frames one video card.
var CardBorder = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

// ActiveCardBorder frames the card whose item is playing.
var ActiveCardBorder = CardBorder.
	BorderForeground(colorPrimary)

// CardTitle style for the item title.
var CardTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

// CreatorName style for the creator line.
var CreatorName = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// CardDescription style for the description text.
var CardDescription = lipgloss.NewStyle().
	Foreground(colorSecondary)

// CardMeta style for secondary card info (mute state, position).
var CardMeta = lipgloss.NewStyle().
	Foreground(colorMuted)

// LikedCount style for the reaction count once liked.
var LikedCount = lipgloss.NewStyle().
	Foreground(colorLike).
	Bold(true)

// PosterFill style for the poster placeholder area of a paused card.
var PosterFill = lipgloss.NewStyle().
	Foreground(colorMuted)

// ProgressPlayed style for the elapsed part of the progress bar.
var ProgressPlayed = lipgloss.NewStyle().
	Foreground(colorPrimary)

// ProgressRest style for the remaining part of the progress bar.
var ProgressRest = lipgloss.NewStyle().
	Foreground(colorMuted)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in the status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in the status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// NoticeStyle for transient failure notices.
var NoticeStyle = lipgloss.NewStyle().
	Foreground(colorError).
	Bold(true).
	Padding(0, 1)

// EndStyle for the end-of-feed message.
var EndStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Italic(true)

// HelpStyle for the initial loading splash.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)
