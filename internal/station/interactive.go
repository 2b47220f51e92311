// Package station fills in station values the analysis could not read
// from the photo board. It walks every record with an empty station and
// asks the operator for the value, because a missing station makes the
// record unusable in the photo ledger.
package station

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/genba-labs/shashin-cli/internal/core/domain"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	fileStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

// fillReason is recorded on every manually supplied station.
const fillReason = "測点を手入力で補充"

// FillModel is the interactive prompt that walks the records with an
// empty station, one at a time.
type FillModel struct {
	batch   []domain.AnalysisResult
	pending []int
	pos     int
	input   textinput.Model

	// hints are the stations already present in the batch, shown so the
	// operator can pick a consistent value.
	hints []string

	// lastValue is the most recent accepted input, offered for repeat.
	lastValue string

	filled   map[int]string
	quitting bool
}

// NewFillModel creates the prompt over the batch's empty-station
// records. The batch itself is not modified; accepted values are
// returned by Corrections after the program finishes.
func NewFillModel(batch []domain.AnalysisResult) *FillModel {
	ti := textinput.New()
	ti.Placeholder = "No.10+50"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 30
	ti.PromptStyle = promptStyle

	return &FillModel{
		batch:   batch,
		pending: domain.EmptyStationIndices(batch),
		input:   ti,
		hints:   domain.CollectStations(batch),
		filled:  make(map[int]string),
	}
}

// Init starts the cursor blink.
func (m *FillModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles one key press.
func (m *FillModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEnter:
		value := m.input.Value()
		if value == "" {
			return m.advance()
		}
		m.accept(value)
		return m.advance()

	case tea.KeyCtrlR:
		if m.lastValue != "" {
			m.accept(m.lastValue)
			return m.advance()
		}
		return m, nil

	case tea.KeyCtrlA:
		if m.lastValue != "" {
			for !m.done() {
				m.accept(m.lastValue)
				m.pos++
			}
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyCtrlS:
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the current prompt.
func (m *FillModel) View() string {
	if m.quitting || m.done() {
		return ""
	}

	record := m.batch[m.pending[m.pos]]
	header := titleStyle.Render(fmt.Sprintf("測点の入力 (%d/%d)", m.pos+1, len(m.pending)))
	file := fileStyle.Render(record.FileName)

	context := record.Remarks
	if context == "" {
		context = record.Description
	}

	hints := ""
	if len(m.hints) > 0 {
		hints = helpStyle.Render("既存の測点: "+strings.Join(m.hints, ", ")) + "\n"
	}

	help := "enter: 確定 / 空enter: スキップ"
	if m.lastValue != "" {
		help += fmt.Sprintf(" / ctrl+r: 「%s」を再入力 / ctrl+a: 残り全てに適用", m.lastValue)
	}
	help += " / ctrl+s: 残りをスキップ / esc: 中断"

	return fmt.Sprintf("%s\n%s  %s\n%s%s\n%s\n",
		header, file, context, hints, m.input.View(), helpStyle.Render(help))
}

// Corrections returns one correction per accepted value, in batch
// order.
func (m *FillModel) Corrections() []domain.NormalisationCorrection {
	var corrections []domain.NormalisationCorrection
	for _, idx := range m.pending {
		value, ok := m.filled[idx]
		if !ok {
			continue
		}
		corrections = append(corrections, domain.NormalisationCorrection{
			FileName:  m.batch[idx].FileName,
			Field:     domain.FieldStation,
			Original:  m.batch[idx].Station,
			Corrected: value,
			Reason:    fillReason,
		})
	}
	return corrections
}

func (m *FillModel) accept(value string) {
	m.filled[m.pending[m.pos]] = value
	m.lastValue = value
}

func (m *FillModel) advance() (tea.Model, tea.Cmd) {
	m.pos++
	m.input.Reset()
	if m.done() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *FillModel) done() bool {
	return m.pos >= len(m.pending)
}

// Fill runs the interactive prompt and returns the corrections the
// operator accepted. A batch with no empty stations returns nil
// without starting the prompt.
func Fill(batch []domain.AnalysisResult) ([]domain.NormalisationCorrection, error) {
	model := NewFillModel(batch)
	if len(model.pending) == 0 {
		return nil, nil
	}

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, fmt.Errorf("running station prompt: %w", err)
	}
	return final.(*FillModel).Corrections(), nil
}
