package slack

import (
	"fmt"
	"strings"

	"github.com/mauv0809/pickleball-courts/internal/booking"
	"github.com/slack-go/slack"
)

// FormatDayAvailability renders the open hours of every court for one date
// as a slash command response.
func FormatDayAvailability(view booking.DayView) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏓 Open courts on "+formatDate(view.Date), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(view.Courts) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No courts are set up yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var lines []string
	for _, row := range view.Courts {
		var open []string
		for i, cell := range row.Cells {
			if cell.Bookable() && i < len(view.Hours) {
				open = append(open, view.Hours[i])
			}
		}
		if len(open) == 0 {
			lines = append(lines, fmt.Sprintf("• %s: fully booked", row.Court.Name))
			continue
		}
		lines = append(lines, fmt.Sprintf("• %s: %s", row.Court.Name, strings.Join(open, ", ")))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", "Use /courts YYYY-MM-DD to see another day", true, false)))

	return slack.NewBlockMessage(blocks...)
}
