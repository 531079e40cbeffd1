// Package tui implements the interactive transformation-rule review screen.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/whipsal/whipsal/internal/database/repository"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Review is the rule-review screen for one archived run: toggle active flags
// and persist the decisions.
type Review struct {
	ctx    context.Context
	rules  *repository.RuleRepo
	runID  string
	items  []repository.ArchivedRule
	dirty  map[string]bool
	cursor int
	status string
}

// NewReview builds the review screen for a run.
func NewReview(ctx context.Context, rules *repository.RuleRepo, runID string) *Review {
	return &Review{ctx: ctx, rules: rules, runID: runID, dirty: make(map[string]bool)}
}

type rulesMsg []repository.ArchivedRule

type savedMsg int

type errMsg struct{ err error }

func (r *Review) Init() tea.Cmd {
	return r.loadRules()
}

func (r *Review) loadRules() tea.Cmd {
	return func() tea.Msg {
		rules, err := r.rules.ListByRun(r.ctx, r.runID)
		if err != nil {
			return errMsg{err}
		}
		return rulesMsg(rules)
	}
}

func (r *Review) saveRules() tea.Cmd {
	return func() tea.Msg {
		saved := 0
		for _, rule := range r.items {
			if !r.dirty[rule.ID] {
				continue
			}
			if err := r.rules.SetActive(r.ctx, rule.ID, rule.IsActive); err != nil {
				return errMsg{err}
			}
			saved++
		}
		return savedMsg(saved)
	}
}

func (r *Review) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case rulesMsg:
		r.items = m
		if r.cursor >= len(r.items) {
			r.cursor = 0
		}
	case savedMsg:
		r.dirty = make(map[string]bool)
		r.status = fmt.Sprintf("saved %d change(s)", int(m))
	case errMsg:
		r.status = "error: " + m.err.Error()
	case tea.KeyMsg:
		switch m.String() {
		case "q", "ctrl+c":
			return r, tea.Quit
		case "up", "k":
			if r.cursor > 0 {
				r.cursor--
			}
		case "down", "j":
			if r.cursor < len(r.items)-1 {
				r.cursor++
			}
		case " ":
			if r.cursor < len(r.items) {
				r.items[r.cursor].IsActive = !r.items[r.cursor].IsActive
				r.dirty[r.items[r.cursor].ID] = !r.dirty[r.items[r.cursor].ID]
				r.status = ""
			}
		case "s":
			return r, r.saveRules()
		case "r":
			return r, r.loadRules()
		}
	}
	return r, nil
}

func (r *Review) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Transformation rules for run %s", shortID(r.runID))))
	b.WriteString("\n\n")

	if len(r.items) == 0 {
		b.WriteString(inactiveStyle.Render("no archived rules for this run"))
		b.WriteString("\n")
	}
	for i, rule := range r.items {
		cursor := "  "
		if i == r.cursor {
			cursor = cursorStyle.Render("> ")
		}
		flag := inactiveStyle.Render("[ ]")
		if rule.IsActive {
			flag = activeStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s%s p%-2d %-28s -> %s", cursor, flag, rule.Priority, rule.Name, rule.TargetColumn)
		if r.dirty[rule.ID] {
			line += statusStyle.Render(" *")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if r.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(r.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space toggle · s save · r reload · q quit"))
	b.WriteString("\n")
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
