package tui

import (
	"context"
	"fmt"
	"strings"

	"gorestaurant/internal/dashboard"
	"gorestaurant/internal/models"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model renders the dashboard controller. All state that matters lives in
// the controller; the model only keeps view widgets.
type Model struct {
	ctx      context.Context
	ctrl     *dashboard.Controller
	foods    list.Model
	addForm  form
	editForm form
	spinner  spinner.Model
	pending  int
	status   string
}

// foodItem represents a plate in the list
type foodItem struct {
	food models.FoodPlate
}

func (i foodItem) Title() string { return i.food.Name }

func (i foodItem) Description() string {
	availability := "Available"
	if !i.food.Available {
		availability = "Unavailable"
	}
	return fmt.Sprintf("R$ %s • %s • %s", i.food.Price, availability, i.food.Description)
}

func (i foodItem) FilterValue() string { return i.food.Name }

// New creates the terminal dashboard
func New(ctx context.Context, ctrl *dashboard.Controller) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	foods := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	foods.Title = "Plates"
	foods.SetFilteringEnabled(false)
	foods.SetShowHelp(false)

	return Model{
		ctx:      ctx,
		ctrl:     ctrl,
		foods:    foods,
		addForm:  newForm("New plate", "add plate"),
		editForm: newForm("Edit plate", "save changes"),
		spinner:  s,
		pending:  1, // the initial load
	}
}

// Init fires the one-time load
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadFoods(m.ctx, m.ctrl))
}

// run marks an operation as pending. Nothing stops a second one from
// starting while the first is in flight.
func (m *Model) run(cmd tea.Cmd) tea.Cmd {
	m.pending++
	return cmd
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.foods.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.ctrl.AddModalOpen():
			return m.updateAddModal(msg)
		case m.ctrl.EditModalOpen():
			return m.updateEditModal(msg)
		}
		return m.updateList(msg)

	case foodsChangedMsg:
		m.done()
		m.status = ""
		m.refresh()
		return m, nil

	case errorMsg:
		m.done()
		m.status = msg.err.Error()
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.foods, cmd = m.foods.Update(msg)
	return m, cmd
}

func (m *Model) done() {
	if m.pending > 0 {
		m.pending--
	}
}

// refresh rebuilds the list from the controller's current state
func (m *Model) refresh() {
	foods := m.ctrl.Foods()
	items := make([]list.Item, len(foods))
	for i, food := range foods {
		items[i] = foodItem{food: food}
	}
	m.foods.SetItems(items)
}

func (m Model) selected() (models.FoodPlate, bool) {
	item, ok := m.foods.SelectedItem().(foodItem)
	if !ok {
		return models.FoodPlate{}, false
	}
	return item.food, true
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "n":
		m.addForm.reset()
		m.ctrl.ToggleAddModal()
		return m, nil
	case "e":
		if food, ok := m.selected(); ok {
			m.ctrl.SelectForEdit(food)
			m.ctrl.ToggleEditModal()
			m.editForm.fill(m.ctrl.EditingFood())
		}
		return m, nil
	case "d":
		if food, ok := m.selected(); ok {
			return m, m.run(deleteFood(m.ctx, m.ctrl, food.ID))
		}
		return m, nil
	case "a":
		if food, ok := m.selected(); ok {
			return m, m.run(toggleAvailability(m.ctx, m.ctrl, food.ID))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.foods, cmd = m.foods.Update(msg)
	return m, cmd
}

func (m Model) updateAddModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.ToggleAddModal()
		return m, nil
	case "enter":
		if m.addForm.onLastField() {
			draft := m.addForm.draft()
			m.ctrl.ToggleAddModal()
			m.addForm.reset()
			return m, m.run(addFood(m.ctx, m.ctrl, draft))
		}
	}

	var cmd tea.Cmd
	m.addForm, cmd = m.addForm.update(msg)
	return m, cmd
}

func (m Model) updateEditModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.ToggleEditModal()
		return m, nil
	case "enter":
		if m.editForm.onLastField() {
			patch := m.editForm.patch()
			m.ctrl.ToggleEditModal()
			return m, m.run(updateFood(m.ctx, m.ctrl, patch))
		}
	}

	var cmd tea.Cmd
	m.editForm, cmd = m.editForm.update(msg)
	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("GoRestaurant") + "  " + helpStyle.Render("n: new plate") + "\n\n")

	if m.ctrl.AddModalOpen() {
		b.WriteString(m.addForm.view() + "\n")
	}
	if m.ctrl.EditModalOpen() {
		b.WriteString(m.editForm.view() + "\n")
	}

	b.WriteString(m.foods.View() + "\n")

	if m.pending > 0 {
		b.WriteString(m.spinner.View() + " working...\n")
	}
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status) + "\n")
	}
	b.WriteString(helpStyle.Render("e: edit • d: delete • a: toggle availability • q: quit"))

	return docStyle.Render(b.String())
}
