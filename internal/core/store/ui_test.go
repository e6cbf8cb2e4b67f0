package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeCycle(t *testing.T) {
	assert.Equal(t, ThemeDark, NextTheme(ThemeLight))
	assert.Equal(t, ThemeSystem, NextTheme(ThemeDark))
	assert.Equal(t, ThemeLight, NextTheme(ThemeSystem))
	assert.Equal(t, ThemeLight, NextTheme("sepia"))

	s, _ := newTestStore()
	assert.Equal(t, ThemeLight, s.SelectTheme())
	assert.Equal(t, ThemeDark, s.CycleTheme())
	assert.Equal(t, ThemeSystem, s.CycleTheme())
	assert.Equal(t, ThemeLight, s.CycleTheme())

	require.NoError(t, s.SetTheme(ThemeSystem))
	assert.Error(t, s.SetTheme("sepia"))
	assert.Equal(t, ThemeSystem, s.SelectTheme())
}

func TestModalAndSidebar(t *testing.T) {
	s, _ := newTestStore()
	assert.False(t, s.SelectIsModalOpen())

	s.OpenModal("create-property")
	assert.True(t, s.SelectIsModalOpen())
	assert.Equal(t, "create-property", s.SelectActiveModal())
	s.CloseModal()
	assert.False(t, s.SelectIsModalOpen())

	assert.True(t, s.ToggleSidebar())
	assert.False(t, s.ToggleSidebar())
	s.SetSidebarOpen(true)
	assert.True(t, s.SelectIsSidebarOpen())
}

func TestToasts(t *testing.T) {
	s, _ := newTestStore()
	first := s.AddToast(ToastSuccess, "Saved")
	s.AddToast(ToastError, "Failed")

	toasts := s.SelectToasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, ToastSuccess, toasts[0].Kind)

	s.DismissToast(first)
	toasts = s.SelectToasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Failed", toasts[0].Message)

	s.ClearToasts()
	assert.Empty(t, s.SelectToasts())
}
