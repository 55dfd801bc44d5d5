package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/greenzone-vis/greenzone/pkg/chart"
	"github.com/greenzone-vis/greenzone/pkg/table"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

func (c *CLI) browseCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "browse <config> [chart]",
		Short: "Explore a dataset's categories in the terminal",
		Long: `Browse loads a chart's dataset and opens an interactive category view:
pick a severity zone to list every region in it, ranked the same way the
chart ranks them.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := LoadConfig(args[0])
			if err != nil {
				return err
			}
			name := ""
			if len(args) == 2 {
				name = args[1]
			}
			spec, err := fc.Chart(name)
			if err != nil {
				return err
			}

			ds, err := c.loadDataset(cmd.Context(), spec, noCache)
			if err != nil {
				return err
			}
			ch, err := chart.New(ds.Table, spec.Config)
			if err != nil {
				return err
			}

			model := newBrowseModel(ch)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the dataset download cache")
	return cmd
}

// =============================================================================
// browseModel - Category and region navigation
// =============================================================================

// browseModel drives the two-level browser: the category list, and the
// ranked regions inside a selected category.
type browseModel struct {
	chart    *chart.Chart
	cursor   int
	selected *chart.Category
	offset   int
	height   int
}

func newBrowseModel(ch *chart.Chart) browseModel {
	return browseModel{chart: ch, height: 15}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.selected != nil {
				m.selected = nil
				m.cursor = 0
				m.offset = 0
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < m.rows()-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			if m.selected == nil {
				m.selected = m.chart.Categories()[m.cursor]
				m.cursor = 0
				m.offset = 0
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m browseModel) rows() int {
	if m.selected != nil {
		return len(m.selected.Pool)
	}
	return len(m.chart.Categories())
}

func (m browseModel) View() string {
	if m.selected != nil {
		return m.regionView()
	}
	return m.categoryView()
}

func (m browseModel) categoryView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.chart.Config().Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	total := m.chart.Table().Len()
	for i, cat := range m.chart.Categories() {
		cursor := "  "
		style := listNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		share := 100 * cat.Ratio
		line := fmt.Sprintf("%-24s %4d regions  %5.1f%%", cat.Label, len(cat.Pool), share)
		b.WriteString(cursor + style.Render(line) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d regions total", total)))
	b.WriteString("\n")
	return b.String()
}

func (m browseModel) regionView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.selected.Label))
	b.WriteString("  " + listDimStyle.Render(m.selected.Description))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  esc back  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.selected.Pool) {
		end = len(m.selected.Pool)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.offset+row == m.cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		}).
		Headers("#", "Region", "Code", "Cases", "Safe")

	for i := m.offset; i < end; i++ {
		e := m.selected.Pool[i]
		t.Row(
			fmt.Sprintf("%d", i+1),
			e.Region,
			e.Postcode,
			formatIncidence(e, m.selected),
			fmt.Sprintf("%.0f", e.TimeSafe),
		)
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

func formatIncidence(e *table.Entry, cat *chart.Category) string {
	if cat.UseSecondary {
		return fmt.Sprintf("%.0f", e.SecondaryIncidence)
	}
	return fmt.Sprintf("%.0f", e.PrimaryIncidence)
}
