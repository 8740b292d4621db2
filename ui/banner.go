package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// renderBanner draws the dismissible error line above the input. The text is
// truncated by display width so wide runes never wrap the layout.
func (a AppView) renderBanner() string {
	hint := " [" + a.keys().DisplayActionKey("dismiss") + "] "
	text := " " + strings.ReplaceAll(a.dataModel.Banner, "\n", " ")

	avail := a.width - runewidth.StringWidth(hint)
	if avail < 1 {
		avail = 1
	}
	text = runewidth.Truncate(text, avail, "…")
	text = runewidth.FillRight(text, avail)

	return BannerStyle.Render(text + hint)
}
