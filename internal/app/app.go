// Package app holds the tracker's user actions as a command table that any
// front end can drive.
package app

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/spendtrack/spendtrack/internal/categories"
	"github.com/spendtrack/spendtrack/internal/chart"
	"github.com/spendtrack/spendtrack/internal/config"
	"github.com/spendtrack/spendtrack/internal/ledger"
	"github.com/spendtrack/spendtrack/internal/report"
)

// Kind classifies a Result the way a message box would.
type Kind int

const (
	KindInfo Kind = iota
	KindWarning
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindWarning:
		return "Warning"
	case KindError:
		return "Error"
	default:
		return "Info"
	}
}

// User-facing messages.
const (
	MsgAdded          = "Expense added successfully!"
	MsgMissingFields  = "Please select a category and enter the amount."
	MsgNoExpenses     = "No expenses recorded to show chart."
	MsgReportSavedFmt = "Expense report saved successfully as %s"
)

// Result is what an action reports back to the user.
type Result struct {
	Kind    Kind
	Title   string
	Message string

	Chart       *chart.Pie // set by a successful chart action
	ClearAmount bool       // the amount field should be emptied
	Quit        bool
}

// Action is one named command.
type Action struct {
	Name  string
	Usage string
	Run   func(a *App, args []string) Result
}

// App owns the session state behind every front end.
type App struct {
	cfg        *config.Config
	categories *categories.Service
	store      *ledger.Store
	exporters  *report.Registry
	logger     *log.Logger
	actions    map[string]Action
}

// New creates an App with an empty store.
func New(cfg *config.Config, logger *log.Logger) *App {
	cats := categories.NewService(cfg.CategoryList())
	a := &App{
		cfg:        cfg,
		categories: cats,
		store:      ledger.NewStore(cats, ledger.Options{RejectNonPositive: cfg.Policy.RejectNonPositive}),
		exporters: report.DefaultRegistry(report.XLSXOptions{
			EmbedChart: cfg.Report.EmbedChart,
			ChartTitle: cfg.Chart.Title,
		}),
		logger:  logger,
		actions: make(map[string]Action),
	}
	a.registerDefaults()
	return a
}

// Categories returns the selectable categories in display order.
func (a *App) Categories() []string { return a.categories.Labels() }

// Store exposes the aggregation store for read access.
func (a *App) Store() *ledger.Store { return a.store }

// ReportPath is where SaveReport writes.
func (a *App) ReportPath() string { return a.cfg.Report.Path }

// Register adds or replaces an action.
func (a *App) Register(act Action) {
	a.actions[strings.ToLower(act.Name)] = act
}

// Actions returns the registered actions sorted by name, aliases included.
func (a *App) Actions() []Action {
	out := make([]Action, 0, len(a.actions))
	for _, act := range a.actions {
		out = append(out, act)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Dispatch runs the named action.
func (a *App) Dispatch(name string, args ...string) Result {
	act, ok := a.actions[strings.ToLower(name)]
	if !ok {
		return Result{
			Kind:    KindError,
			Title:   "Error",
			Message: fmt.Sprintf("Unknown command %q. Type \"help\" for a list of commands.", name),
		}
	}
	return act.Run(a, args)
}

func (a *App) registerDefaults() {
	a.Register(Action{Name: "add", Usage: "add <category> <amount>", Run: func(a *App, args []string) Result {
		var cat, amt string
		switch len(args) {
		case 0:
		case 1:
			cat = args[0]
		default:
			cat = strings.Join(args[:len(args)-1], " ")
			amt = args[len(args)-1]
		}
		return a.AddExpense(cat, amt)
	}})
	a.Register(Action{Name: "chart", Usage: "chart", Run: func(a *App, _ []string) Result { return a.ShowChart() }})
	a.Register(Action{Name: "save", Usage: "save", Run: func(a *App, _ []string) Result { return a.SaveReport() }})

	closeAction := func(a *App, _ []string) Result { return a.Close() }
	a.Register(Action{Name: "close", Usage: "close", Run: closeAction})
	a.Register(Action{Name: "quit", Usage: "quit", Run: closeAction})
	a.Register(Action{Name: "exit", Usage: "exit", Run: closeAction})

	a.Register(Action{Name: "help", Usage: "help", Run: func(a *App, _ []string) Result { return a.Help() }})
}

// AddExpense records an amount against a category.
func (a *App) AddExpense(category, amountText string) Result {
	cat, amount, err := a.store.Record(category, amountText)
	if err != nil {
		a.logger.Debug("expense rejected", "category", category, "amount", amountText, "err", err)
		return Result{Kind: KindError, Title: "Error", Message: a.rejectionMessage(category, err)}
	}
	a.logger.Debug("expense added", "category", cat, "amount", amount.String())
	return Result{Kind: KindInfo, Title: "Success", Message: MsgAdded, ClearAmount: true}
}

func (a *App) rejectionMessage(category string, err error) string {
	switch {
	case errors.Is(err, ledger.ErrMissingCategory), errors.Is(err, ledger.ErrMissingAmount):
		return MsgMissingFields
	case errors.Is(err, ledger.ErrUnknownCategory):
		msg := fmt.Sprintf("Unknown category %q.", strings.TrimSpace(category))
		if s, ok := a.categories.Suggest(category); ok {
			msg += fmt.Sprintf(" Did you mean %q?", s)
		}
		return msg + " Choose one of: " + strings.Join(a.categories.Labels(), ", ") + "."
	case errors.Is(err, ledger.ErrInvalidAmount):
		return "Please enter the amount as a number."
	case errors.Is(err, ledger.ErrNonPositiveAmount):
		return "Please enter an amount greater than zero."
	default:
		return err.Error()
	}
}

// ShowChart builds a pie chart of the positive totals.
func (a *App) ShowChart() Result {
	pie, err := chart.NewPie(a.cfg.Chart.Title, a.cfg.ChartStartAngle(), a.store.Snapshot())
	if errors.Is(err, chart.ErrNoData) {
		return Result{Kind: KindWarning, Title: "Warning", Message: MsgNoExpenses}
	}
	if err != nil {
		a.logger.Error("building chart", "err", err)
		return Result{Kind: KindError, Title: "Error", Message: err.Error()}
	}
	return Result{Kind: KindInfo, Title: pie.Title, Message: pie.Render(a.cfg.Chart.Radius), Chart: pie}
}

// SaveReport writes every category's total to the report file, replacing
// any previous report.
func (a *App) SaveReport() Result {
	path := a.cfg.Report.Path
	if err := report.Save(path, report.Rows(a.store.Totals()), a.exporters); err != nil {
		a.logger.Error("saving report", "path", path, "err", err)
		return Result{Kind: KindError, Title: "Error", Message: fmt.Sprintf("Could not save report: %v", err)}
	}
	a.logger.Info("report saved", "path", path)
	return Result{Kind: KindInfo, Title: "Report Saved", Message: fmt.Sprintf(MsgReportSavedFmt, path)}
}

// Close ends the session. Nothing is saved.
func (a *App) Close() Result {
	return Result{Kind: KindInfo, Quit: true}
}

// Help lists the available commands.
func (a *App) Help() Result {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, act := range a.Actions() {
		fmt.Fprintf(&b, "  %s\n", act.Usage)
	}
	b.WriteString("Categories: " + strings.Join(a.categories.Labels(), ", "))
	return Result{Kind: KindInfo, Title: "Help", Message: b.String()}
}
