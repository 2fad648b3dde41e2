package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PathwayListModel - Interactive pathway selection
// =============================================================================

// PathwayEntry is one selectable pathway in the picker.
type PathwayEntry struct {
	ID       string // KEGG pathway identifier, e.g. "eco00010"
	Name     string // human-readable pathway name
	Category string // coarse functional category
}

// commonPathways is the curated list offered when fetch is run without an
// argument. All entries are E. coli maps; any other organism can still be
// fetched by passing its identifier explicitly.
var commonPathways = []PathwayEntry{
	{ID: "eco00010", Name: "Glycolysis / Gluconeogenesis", Category: "Carbohydrate"},
	{ID: "eco00020", Name: "Citrate cycle (TCA cycle)", Category: "Carbohydrate"},
	{ID: "eco00030", Name: "Pentose phosphate pathway", Category: "Carbohydrate"},
	{ID: "eco00040", Name: "Pentose and glucuronate interconversions", Category: "Carbohydrate"},
	{ID: "eco00051", Name: "Fructose and mannose metabolism", Category: "Carbohydrate"},
	{ID: "eco00061", Name: "Fatty acid biosynthesis", Category: "Lipid"},
	{ID: "eco00071", Name: "Fatty acid degradation", Category: "Lipid"},
	{ID: "eco00190", Name: "Oxidative phosphorylation", Category: "Energy"},
	{ID: "eco00230", Name: "Purine metabolism", Category: "Nucleotide"},
	{ID: "eco00240", Name: "Pyrimidine metabolism", Category: "Nucleotide"},
	{ID: "eco00250", Name: "Alanine, aspartate and glutamate metabolism", Category: "Amino acid"},
	{ID: "eco00260", Name: "Glycine, serine and threonine metabolism", Category: "Amino acid"},
	{ID: "eco00270", Name: "Cysteine and methionine metabolism", Category: "Amino acid"},
	{ID: "eco00290", Name: "Valine, leucine and isoleucine biosynthesis", Category: "Amino acid"},
	{ID: "eco00330", Name: "Arginine and proline metabolism", Category: "Amino acid"},
	{ID: "eco00400", Name: "Phenylalanine, tyrosine and tryptophan biosynthesis", Category: "Amino acid"},
	{ID: "eco00500", Name: "Starch and sucrose metabolism", Category: "Carbohydrate"},
	{ID: "eco00620", Name: "Pyruvate metabolism", Category: "Carbohydrate"},
	{ID: "eco00630", Name: "Glyoxylate and dicarboxylate metabolism", Category: "Carbohydrate"},
	{ID: "eco00650", Name: "Butanoate metabolism", Category: "Carbohydrate"},
	{ID: "eco00670", Name: "One carbon pool by folate", Category: "Cofactor"},
	{ID: "eco00760", Name: "Nicotinate and nicotinamide metabolism", Category: "Cofactor"},
	{ID: "eco00770", Name: "Pantothenate and CoA biosynthesis", Category: "Cofactor"},
	{ID: "eco00900", Name: "Terpenoid backbone biosynthesis", Category: "Terpenoid"},
	{ID: "eco01100", Name: "Metabolic pathways (overview)", Category: "Global"},
}

// PathwayListModel is the bubbletea model for interactive pathway selection.
type PathwayListModel struct {
	Pathways []PathwayEntry
	Cursor   int
	Selected *PathwayEntry
	Height   int
	Offset   int
}

// NewPathwayListModel creates a new pathway list model.
func NewPathwayListModel(pathways []PathwayEntry) PathwayListModel {
	return PathwayListModel{
		Pathways: pathways,
		Cursor:   0,
		Height:   15,
		Offset:   0,
	}
}

func (m PathwayListModel) Init() tea.Cmd {
	return nil
}

func (m PathwayListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Pathways)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			entry := m.Pathways[m.Cursor]
			m.Selected = &entry
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PathwayListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Pathway"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Pathways) {
		end = len(m.Pathways)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Pathways[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, p.ID, p.Name, p.Category})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Pathway", "Category").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Pathways) {
				return lipgloss.NewStyle()
			}

			base := lipgloss.NewStyle()
			if col == 3 {
				base = base.Foreground(colorDim)
			}
			if actualIdx == m.Cursor {
				if col != 3 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Pathways))))

	return b.String()
}

// pickPathway runs the interactive picker and returns the chosen pathway ID.
// An empty string means the user quit without selecting.
func pickPathway() (string, error) {
	model := NewPathwayListModel(commonPathways)
	result, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", err
	}
	final, ok := result.(PathwayListModel)
	if !ok || final.Selected == nil {
		return "", nil
	}
	return final.Selected.ID, nil
}
