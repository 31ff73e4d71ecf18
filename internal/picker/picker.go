// Package picker shows an interactive terminal table for choosing among the
// ranked selector candidates.
package picker

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/jakopako/pinpoint/internal/selector"
	"github.com/jakopako/pinpoint/internal/utils"
	"github.com/rivo/tview"
)

const maxSelectorDisplayLen = 80

// Pick displays the candidates and returns the one the user selects.
// Hitting Escape aborts the selection.
func Pick(cands []selector.Candidate) (selector.Candidate, error) {
	if len(cands) == 0 {
		return selector.Candidate{}, fmt.Errorf("no candidates to pick from")
	}

	app := tview.NewApplication()
	table := tview.NewTable().SetBorders(true)

	headers := []string{"score", "steps", "selector"}
	for c, h := range headers {
		table.SetCell(0, c, tview.NewTableCell(h).
			SetTextColor(tcell.ColorBlue).
			SetAlign(tview.AlignCenter))
	}
	for r, cand := range cands {
		table.SetCell(r+1, 0, tview.NewTableCell(fmt.Sprintf("%d", cand.Score)).
			SetTextColor(tcell.ColorGreen).
			SetAlign(tview.AlignCenter))
		table.SetCell(r+1, 1, tview.NewTableCell(fmt.Sprintf("%d", cand.Steps())).
			SetTextColor(tcell.ColorGreen).
			SetAlign(tview.AlignCenter))
		table.SetCell(r+1, 2, tview.NewTableCell(utils.ShortenString(cand.Selector, maxSelectorDisplayLen)).
			SetTextColor(tcell.ColorWhite).
			SetAlign(tview.AlignLeft))
	}

	picked := -1
	table.SetSelectable(true, false)
	table.Select(1, 0).SetFixed(1, 0).SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			app.Stop()
		}
	}).SetSelectedFunc(func(row int, column int) {
		if row > 0 {
			picked = row - 1
			app.Stop()
		}
	})

	if err := app.SetRoot(table, true).SetFocus(table).Run(); err != nil {
		return selector.Candidate{}, err
	}
	if picked < 0 {
		return selector.Candidate{}, fmt.Errorf("no candidate selected")
	}
	return cands[picked], nil
}
