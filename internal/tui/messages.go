package tui

import (
	"context"
	"fmt"

	"gorestaurant/internal/dashboard"
	"gorestaurant/internal/models"

	tea "github.com/charmbracelet/bubbletea"
)

// foodsChangedMsg is sent after the controller's list may have changed
type foodsChangedMsg struct{}

// errorMsg carries a failed operation back to the UI
type errorMsg struct {
	err error
}

// loadFoods runs the one-time initial fetch
func loadFoods(ctx context.Context, ctrl *dashboard.Controller) tea.Cmd {
	return func() tea.Msg {
		if err := ctrl.Initialize(ctx); err != nil {
			return errorMsg{err: fmt.Errorf("loading plates: %w", err)}
		}
		return foodsChangedMsg{}
	}
}

// addFood creates a plate. Failures only reach the log.
func addFood(ctx context.Context, ctrl *dashboard.Controller, draft models.FoodDraft) tea.Cmd {
	return func() tea.Msg {
		ctrl.CreateFood(ctx, draft)
		return foodsChangedMsg{}
	}
}

// updateFood sends the edit form for the current editing target
func updateFood(ctx context.Context, ctrl *dashboard.Controller, patch models.FoodPatch) tea.Cmd {
	return func() tea.Msg {
		if err := ctrl.UpdateFood(ctx, patch); err != nil {
			return errorMsg{err: err}
		}
		return foodsChangedMsg{}
	}
}

// deleteFood removes a plate
func deleteFood(ctx context.Context, ctrl *dashboard.Controller, id uint) tea.Cmd {
	return func() tea.Msg {
		if err := ctrl.DeleteFood(ctx, id); err != nil {
			return errorMsg{err: err}
		}
		return foodsChangedMsg{}
	}
}

// toggleAvailability flips a plate between available and unavailable
func toggleAvailability(ctx context.Context, ctrl *dashboard.Controller, id uint) tea.Cmd {
	return func() tea.Msg {
		if err := ctrl.ToggleAvailability(ctx, id); err != nil {
			return errorMsg{err: err}
		}
		return foodsChangedMsg{}
	}
}
