package store

import (
	"fmt"
	"time"

	"real-estate-system/storefront/internal/core/domain"

	"github.com/google/uuid"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Themes — фиксированный порядок переключения тем.
var Themes = []Theme{ThemeLight, ThemeDark, ThemeSystem}

// NextTheme возвращает следующую тему по кругу. Неизвестная тема дает первую.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t == current {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ParseTheme(raw string) (Theme, error) {
	for _, t := range Themes {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown theme %q", domain.ErrInvalidArgument, raw)
}

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
	ToastWarning ToastKind = "warning"
)

type Toast struct {
	ID        string
	Kind      ToastKind
	Message   string
	CreatedAt time.Time
}

type uiState struct {
	theme       Theme
	activeModal string
	sidebarOpen bool
	toasts      []Toast
}

func initialUIState() uiState {
	return uiState{theme: ThemeLight, toasts: []Toast{}}
}

func (s *Store) SetTheme(t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.theme = t
	return nil
}

// CycleTheme переключает тему на следующую и возвращает ее.
func (s *Store) CycleTheme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.theme = NextTheme(s.ui.theme)
	return s.ui.theme
}

func (s *Store) OpenModal(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.activeModal = name
}

func (s *Store) CloseModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.activeModal = ""
}

func (s *Store) ToggleSidebar() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.sidebarOpen = !s.ui.sidebarOpen
	return s.ui.sidebarOpen
}

func (s *Store) SetSidebarOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.sidebarOpen = open
}

// AddToast добавляет уведомление и возвращает его id.
func (s *Store) AddToast(kind ToastKind, message string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	toast := Toast{ID: uuid.New().String(), Kind: kind, Message: message, CreatedAt: s.clock()}
	s.ui.toasts = append(s.ui.toasts, toast)
	return toast.ID
}

func (s *Store) DismissToast(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]Toast, 0, len(s.ui.toasts))
	for _, t := range s.ui.toasts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.ui.toasts = kept
}

func (s *Store) ClearToasts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.toasts = []Toast{}
}

func (s *Store) SelectTheme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ui.theme
}

func (s *Store) SelectActiveModal() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ui.activeModal
}

func (s *Store) SelectIsModalOpen() bool {
	return s.SelectActiveModal() != ""
}

func (s *Store) SelectIsSidebarOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ui.sidebarOpen
}

func (s *Store) SelectToasts() []Toast {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Toast(nil), s.ui.toasts...)
}
