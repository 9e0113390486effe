package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"shardctl/internal/domain"
)

// maxDiagnosticLines bounds the diagnostic shown in the details pane
const maxDiagnosticLines = 40

// ResultSaver persists results after failures are marked resolved
type ResultSaver interface {
	SaveOutput(selector string, output *domain.ShardResultsOutput) error
}

// ErrorViewer lists the non-passing groups of a saved run in a TUI.
// R toggles a group's resolved mark, which is written back immediately.
type ErrorViewer struct {
	saver    ResultSaver
	selector string
}

// NewErrorViewer creates a new ErrorViewer for the results of selector
func NewErrorViewer(saver ResultSaver, selector string) *ErrorViewer {
	return &ErrorViewer{saver: saver, selector: selector}
}

// View runs the TUI until Ctrl+C or q
func (ev *ErrorViewer) View(results *domain.ShardResultsOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No failed groups found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, failure := range results.Details {
		list.AddItem(listItemText(i, failure), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(tview.NewFlex().
			AddItem(detailsView, 0, 1, false).
			AddItem(tview.NewBox(), 2, 0, false), 0, 1, false)

	body := tview.NewFlex().
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	var saveErr error
	updateHeader := func() {
		text := headerText(results)
		if saveErr != nil {
			text = fmt.Sprintf(" [red]save failed: %v[white] ", tview.Escape(saveErr.Error()))
		}
		headerView.SetText(text)
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(results.Details) {
			return
		}
		failure := results.Details[index]
		statsView.SetText(formatFailureStats(failure))
		detailsView.SetText(formatFailureDetails(failure)).ScrollToBeginning()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q':
				app.Stop()
				return nil
			case 'r', 'R':
				index := list.GetCurrentItem()
				if index >= 0 && index < len(results.Details) {
					toggleResolved(results, index)
					list.SetItemText(index, listItemText(index, results.Details[index]), "")
					saveErr = ev.saver.SaveOutput(ev.selector, results)
					updateHeader()
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(body, 0, 1, true)

	if err := app.SetRoot(layout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return saveErr
}

func toggleResolved(results *domain.ShardResultsOutput, index int) {
	results.Details[index].Resolved = !results.Details[index].Resolved
}

func unresolvedCount(results *domain.ShardResultsOutput) int {
	var n int
	for _, d := range results.Details {
		if !d.Resolved {
			n++
		}
	}
	return n
}

func headerText(results *domain.ShardResultsOutput) string {
	return fmt.Sprintf(" Failed Groups (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] mark resolved, → details, ← back, q quit ",
		len(results.Details), unresolvedCount(results))
}

func listItemText(index int, failure domain.GroupFailure) string {
	label := tview.Escape(failure.Label)
	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, label)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, label)
}

func formatFailureStats(failure domain.GroupFailure) string {
	return fmt.Sprintf("[cyan]shard:[white] %d  [cyan]group:[white] %d  [cyan]status:[white] [red]%s[white]\n[cyan]target:[white] [yellow]%s[white]\n",
		failure.Shard, failure.Ordinal, failure.Status, tview.Escape(failure.Target))
}

func formatFailureDetails(failure domain.GroupFailure) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[red]✗ %s[white]\n\n", tview.Escape(failure.Label))

	diagnostic := strings.TrimSpace(failure.Diagnostic)
	if diagnostic == "" {
		b.WriteString("[gray](no diagnostic recorded)[white]\n")
		return b.String()
	}

	b.WriteString("[yellow]Diagnostic:[white]\n")
	lines := strings.Split(diagnostic, "\n")
	for i, line := range lines {
		if i == maxDiagnosticLines {
			fmt.Fprintf(&b, "[gray]... and %d more lines[white]\n", len(lines)-maxDiagnosticLines)
			break
		}
		b.WriteString(tview.Escape(line))
		b.WriteString("\n")
	}
	return b.String()
}
