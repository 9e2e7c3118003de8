package tui

import (
	"strings"

	"gorestaurant/internal/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldImage = iota
	fieldName
	fieldPrice
	fieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{"Image URL", "Name", "Price", "Description"}

// form is the body of the add and edit modals
type form struct {
	title   string
	submit  string
	inputs  []textinput.Model
	initial [fieldCount]string
	focus   int
}

func newForm(title, submit string) form {
	placeholders := [fieldCount]string{"Paste the image link here", "Ex: Moda Italiana", "Ex: 19.90", "Description"}

	f := form{title: title, submit: submit, inputs: make([]textinput.Model, fieldCount)}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		ti.Width = 40
		f.inputs[i] = ti
	}
	f.inputs[0].Focus()
	return f
}

// fill loads a plate into the inputs and remembers the values so the edit
// only sends what changed
func (f *form) fill(p models.FoodPlate) {
	f.initial = [fieldCount]string{p.Image, p.Name, p.Price, p.Description}
	for i, v := range f.initial {
		f.inputs[i].SetValue(v)
	}
	f.setFocus(0)
}

// reset clears every input
func (f *form) reset() {
	f.initial = [fieldCount]string{}
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.setFocus(0)
}

func (f *form) setFocus(i int) {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

// onLastField reports whether enter should submit the form
func (f form) onLastField() bool {
	return f.focus == fieldCount-1
}

func (f form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// draft returns the add modal's values
func (f form) draft() models.FoodDraft {
	return models.FoodDraft{
		Image:       f.value(fieldImage),
		Name:        f.value(fieldName),
		Price:       f.value(fieldPrice),
		Description: f.value(fieldDescription),
	}
}

// patch returns the fields that differ from what fill loaded
func (f form) patch() models.FoodPatch {
	var p models.FoodPatch
	changed := func(i int) *string {
		v := f.value(i)
		if v == f.initial[i] {
			return nil
		}
		return &v
	}
	p.Image = changed(fieldImage)
	p.Name = changed(fieldName)
	p.Price = changed(fieldPrice)
	p.Description = changed(fieldDescription)
	return p
}

// update moves focus between fields or forwards keys to the focused input
func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down", "enter":
			f.setFocus(f.focus + 1)
			return f, nil
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return f, nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f form) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title) + "\n\n")
	for i, in := range f.inputs {
		b.WriteString(fieldLabels[i] + "\n")
		b.WriteString(in.View() + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab: next field • enter on last field: "+f.submit+" • esc: close"))
	return modalStyle.Render(b.String())
}
