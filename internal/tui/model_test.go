package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gorestaurant/internal/dashboard"
	"gorestaurant/internal/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAPI keeps the remote collection in memory
type stubAPI struct {
	mu         sync.Mutex
	foods      []models.FoodPlate
	nextID     uint
	listCalls  int
	lastUpdate models.FoodPlate
	deleteErr  error
}

func (s *stubAPI) List(ctx context.Context) ([]models.FoodPlate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	return append([]models.FoodPlate{}, s.foods...), nil
}

func (s *stubAPI) Create(ctx context.Context, plate models.FoodPlate) (models.FoodPlate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	plate.ID = s.nextID
	s.foods = append(s.foods, plate)
	return plate, nil
}

func (s *stubAPI) Update(ctx context.Context, id uint, plate models.FoodPlate) (models.FoodPlate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUpdate = plate
	for i := range s.foods {
		if s.foods[i].ID == id {
			s.foods[i] = plate
		}
	}
	return plate, nil
}

func (s *stubAPI) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteErr
}

func newTestModel(t *testing.T) (Model, *stubAPI, *dashboard.Controller) {
	t.Helper()
	api := &stubAPI{
		foods: []models.FoodPlate{
			{ID: 1, Name: "Pizza", Price: "10.00", Description: "Cheese", Available: true},
			{ID: 2, Name: "Pasta", Price: "8.00", Description: "Fresh", Available: true},
		},
		nextID: 2,
	}
	ctrl := dashboard.NewController(api, zerolog.Nop())
	m := New(context.Background(), ctrl)

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 60})
	m = send(t, m, loadFoods(context.Background(), ctrl)())
	return m, api, ctrl
}

// send delivers msg and returns the updated model
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok)
	return model
}

// sendCmd delivers msg, runs the resulting command and delivers its result
func sendCmd(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	m = updated.(Model)
	require.NotNil(t, cmd)
	return send(t, m, cmd())
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_InitialLoad(t *testing.T) {
	m, api, _ := newTestModel(t)

	assert.Len(t, m.foods.Items(), 2)
	assert.Equal(t, 0, m.pending)
	assert.Equal(t, 1, api.listCalls)
}

func TestModel_ReRenderDoesNotRefetch(t *testing.T) {
	m, api, ctrl := newTestModel(t)

	// A second activation and any number of renders leave the fetch count alone
	m = send(t, m, loadFoods(context.Background(), ctrl)())
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
	_ = m.View()

	assert.Equal(t, 1, api.listCalls)
}

func TestModel_AddPlate(t *testing.T) {
	m, api, ctrl := newTestModel(t)

	m = send(t, m, key("n"))
	require.True(t, ctrl.AddModalOpen())

	for i, value := range []string{"pasta.png", "Lasagna", "12.00", "Layers"} {
		m = send(t, m, key(value))
		if i < fieldCount-1 {
			m = send(t, m, key("enter"))
		}
	}
	m = sendCmd(t, m, key("enter"))

	assert.False(t, ctrl.AddModalOpen())
	require.Len(t, m.foods.Items(), 3)
	added := m.foods.Items()[2].(foodItem).food
	assert.Equal(t, models.FoodPlate{ID: 3, Name: "Lasagna", Image: "pasta.png", Price: "12.00", Description: "Layers", Available: true}, added)
	assert.Len(t, api.foods, 3)
}

func TestModel_EscClosesAddModal(t *testing.T) {
	m, _, ctrl := newTestModel(t)

	m = send(t, m, key("n"))
	m = send(t, m, key("esc"))

	assert.False(t, ctrl.AddModalOpen())
	assert.Len(t, m.foods.Items(), 2)
}

func TestModel_EditPlate(t *testing.T) {
	m, api, ctrl := newTestModel(t)

	m.foods.Select(1)
	m = send(t, m, key("e"))
	require.True(t, ctrl.EditModalOpen())
	assert.Equal(t, uint(2), ctrl.EditingFood().ID)
	assert.Equal(t, "Pasta", m.editForm.inputs[fieldName].Value())

	m.editForm.inputs[fieldPrice].SetValue("9.00")
	m.editForm.setFocus(fieldDescription)
	m = sendCmd(t, m, key("enter"))

	assert.False(t, ctrl.EditModalOpen())
	assert.True(t, ctrl.EditingFood().IsZero())
	assert.Equal(t, models.FoodPlate{ID: 2, Name: "Pasta", Price: "9.00", Description: "Fresh", Available: true}, api.lastUpdate)
	assert.Equal(t, "9.00", m.foods.Items()[1].(foodItem).food.Price)
}

func TestModel_EditFormSendsOnlyChangedFields(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.editForm.fill(models.FoodPlate{ID: 1, Name: "Pizza", Price: "10.00", Description: "Cheese"})
	m.editForm.inputs[fieldPrice].SetValue("11.00")

	patch := m.editForm.patch()
	require.NotNil(t, patch.Price)
	assert.Equal(t, "11.00", *patch.Price)
	assert.Nil(t, patch.Name)
	assert.Nil(t, patch.Image)
	assert.Nil(t, patch.Description)
}

func TestModel_DeletePlate(t *testing.T) {
	m, _, ctrl := newTestModel(t)

	m = sendCmd(t, m, key("d"))

	require.Len(t, m.foods.Items(), 1)
	assert.Equal(t, uint(2), m.foods.Items()[0].(foodItem).food.ID)
	assert.Len(t, ctrl.Foods(), 1)
}

func TestModel_DeleteErrorShowsStatus(t *testing.T) {
	m, api, _ := newTestModel(t)
	api.deleteErr = errors.New("service unavailable")

	m = sendCmd(t, m, key("d"))

	assert.Len(t, m.foods.Items(), 2)
	assert.Contains(t, m.status, "service unavailable")
	assert.Contains(t, m.View(), "service unavailable")
}

func TestModel_ToggleAvailability(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = sendCmd(t, m, key("a"))

	food := m.foods.Items()[0].(foodItem).food
	assert.False(t, food.Available)
	assert.Contains(t, m.foods.Items()[0].(foodItem).Description(), "Unavailable")
}

func TestModel_QuitKeys(t *testing.T) {
	m, _, _ := newTestModel(t)

	for _, k := range []tea.KeyMsg{key("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(k)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}
