// Package ui contains the front ends that drive the command table.
package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/spendtrack/spendtrack/internal/app"
)

const (
	pageMain   = "main"
	pageDialog = "dialog"

	labelAdd   = "Add Expense"
	labelChart = "Show Chart"
	labelSave  = "Save Report"
	labelClose = "Close"
)

// Form is the full-screen terminal form.
type Form struct {
	app      *app.App
	tv       *tview.Application
	pages    *tview.Pages
	form     *tview.Form
	category *tview.DropDown
	amount   *tview.InputField
	closed   bool
}

// NewForm lays out the form; call Run to start the event loop.
func NewForm(a *app.App) *Form {
	f := &Form{app: a, tv: tview.NewApplication()}

	f.category = tview.NewDropDown().
		SetLabel("Select Category: ").
		SetOptions(a.Categories(), nil)
	f.amount = tview.NewInputField().
		SetLabel("Enter Amount: ").
		SetFieldWidth(20).
		SetAcceptanceFunc(acceptAmountRune)

	f.form = tview.NewForm().
		AddFormItem(f.category).
		AddFormItem(f.amount).
		AddButton(labelAdd, f.addExpense).
		AddButton(labelChart, f.showChart).
		AddButton(labelSave, f.saveReport).
		AddButton(labelClose, f.close)
	f.form.SetBorder(true).SetTitle(" Expense Tracker ")

	f.pages = tview.NewPages().AddPage(pageMain, f.form, true, true)
	f.tv.SetRoot(f.pages, true).EnableMouse(true)
	return f
}

// Run blocks until the user closes the form.
func (f *Form) Run() error {
	return f.tv.Run()
}

func (f *Form) selectedCategory() string {
	_, option := f.category.GetCurrentOption()
	return option
}

func (f *Form) addExpense() {
	res := f.app.AddExpense(f.selectedCategory(), f.amount.GetText())
	if res.ClearAmount {
		f.amount.SetText("")
	}
	f.showMessage(res)
}

func (f *Form) showChart() {
	res := f.app.ShowChart()
	if res.Chart == nil {
		f.showMessage(res)
		return
	}
	f.showText(res.Title, res.Message)
}

func (f *Form) saveReport() {
	f.showMessage(f.app.SaveReport())
}

func (f *Form) close() {
	if res := f.app.Close(); res.Quit {
		f.closed = true
		f.tv.Stop()
	}
}

func (f *Form) showMessage(res app.Result) {
	text := res.Message
	if res.Title != "" {
		text = res.Title + "\n\n" + res.Message
	}
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) { f.closeDialog() })
	switch res.Kind {
	case app.KindError:
		modal.SetBackgroundColor(tcell.ColorDarkRed)
	case app.KindWarning:
		modal.SetBackgroundColor(tcell.ColorOlive)
	}
	f.openDialog(modal)
}

func (f *Form) showText(title, body string) {
	view := tview.NewTextView().SetText(body)
	view.SetBorder(true).SetTitle(" " + title + " (Esc to close) ")
	view.SetDoneFunc(func(tcell.Key) { f.closeDialog() })

	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	f.openDialog(center(view, width+4, len(lines)+2))
}

func (f *Form) openDialog(p tview.Primitive) {
	f.pages.AddPage(pageDialog, p, true, true)
	f.tv.SetFocus(p)
}

func (f *Form) closeDialog() {
	f.pages.RemovePage(pageDialog)
	f.tv.SetFocus(f.form)
}

func center(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

// acceptAmountRune keeps obviously non-numeric keystrokes out of the amount
// field. Full parsing happens when the expense is added.
func acceptAmountRune(_ string, r rune) bool {
	return strings.ContainsRune("0123456789.-+eE", r)
}
