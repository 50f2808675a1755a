package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/inscribe/pkg/pipeline"
	"github.com/matzehuels/inscribe/pkg/search"
)

// interactiveProgressEvery is the report interval used by the live view
// when the config does not ask for something finer.
const interactiveProgressEvery = 250

// Progress bar styles
var (
	barFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
	barWidth      = 40
)

// =============================================================================
// SearchModel - Live search progress
// =============================================================================

// progressMsg carries a search progress report into the model.
type progressMsg search.Progress

// solvedMsg ends the program with the solve outcome.
type solvedMsg struct {
	res *pipeline.Result
	err error
}

// SearchModel is the bubbletea model for "solve --interactive".
type SearchModel struct {
	Source    string
	Checked   int
	Total     int
	Area      int64
	Elapsed   time.Duration
	Result    *pipeline.Result
	Err       error
	Cancelled bool
}

// NewSearchModel creates a model for the given input file.
func NewSearchModel(source string) SearchModel {
	return SearchModel{Source: source}
}

func (m SearchModel) Init() tea.Cmd {
	return nil
}

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Cancelled = true
			return m, tea.Quit
		}
	case progressMsg:
		m.Checked = msg.Checked
		m.Total = msg.Total
		m.Area = msg.Area
		m.Elapsed = msg.Elapsed
	case solvedMsg:
		m.Result = msg.res
		m.Err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m SearchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Searching " + m.Source))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q quit"))
	b.WriteString("\n\n")

	b.WriteString(progressBar(m.Checked, m.Total, barWidth))
	if m.Total > 0 {
		pct := 100 * float64(m.Checked) / float64(m.Total)
		b.WriteString(fmt.Sprintf(" %5.1f%%", pct))
	}
	b.WriteString("\n")

	b.WriteString(StyleDim.Render(fmt.Sprintf("checked %d of %d candidates", m.Checked, m.Total)))
	if m.Area > 0 {
		b.WriteString(StyleDim.Render(" · testing area ") + StyleNumber.Render(fmt.Sprint(m.Area)))
	}
	if m.Elapsed > 0 {
		b.WriteString(StyleDim.Render(" · " + m.Elapsed.Round(time.Millisecond).String()))
	}
	b.WriteString("\n")
	return b.String()
}

// progressBar draws a fixed-width bar for done out of total.
func progressBar(done, total, width int) string {
	filled := 0
	if total > 0 {
		filled = min(width, done*width/total)
	}
	return barFullStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// runInteractive solves path while a bubbletea program shows the search
// progress on out. Quitting the program cancels the solve.
func runInteractive(ctx context.Context, runner *pipeline.Runner, path string, opts pipeline.Options) (*pipeline.Result, error) {
	return runInteractiveTo(ctx, statusOut, nil, runner, path, opts)
}

func runInteractiveTo(ctx context.Context, out io.Writer, in io.Reader, runner *pipeline.Runner, path string, opts pipeline.Options) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	progOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(out)}
	if in != nil {
		progOpts = append(progOpts, tea.WithInput(in))
	}
	p := tea.NewProgram(NewSearchModel(path), progOpts...)

	if opts.ProgressEvery <= 0 || opts.ProgressEvery > interactiveProgressEvery {
		opts.ProgressEvery = interactiveProgressEvery
	}
	opts.OnProgress = func(pr search.Progress) { p.Send(progressMsg(pr)) }
	// log lines would tear the live view
	opts.Logger = newLogger(io.Discard, LogInfo)

	go func() {
		res, err := runner.SolveFile(ctx, path, opts)
		p.Send(solvedMsg{res: res, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(SearchModel)
	if m.Cancelled {
		return nil, context.Canceled
	}
	return m.Result, m.Err
}
