// Package tray shows the editor's system tray icon and menu.
package tray

import (
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"fyne.io/systray"
	"github.com/michaelquigley/df/dl"
	"github.com/soar/sohconfig/internal/session"
)

// Actions is what the tray menu can do to the session.
type Actions interface {
	Save() error
	Backend() (session.BackendEntry, error)
	SetBackend(value string) error
}

// ShutdownFunc is called when "Exit" is clicked.
type ShutdownFunc func()

type backendItem struct {
	entry session.BackendEntry
	item  *systray.MenuItem
}

// Tray manages the system tray icon and menu.
type Tray struct {
	url          string
	actions      Actions
	shutdownFunc ShutdownFunc
	once         sync.Once
	shuttingDown atomic.Bool
	menuOpen     *systray.MenuItem
	menuSave     *systray.MenuItem
	menuExit     *systray.MenuItem
	backends     []backendItem
}

func New(url string, actions Actions, shutdownFn ShutdownFunc) *Tray {
	return &Tray{
		url:          url,
		actions:      actions,
		shutdownFunc: shutdownFn,
	}
}

// Run shows the tray and blocks until Quit.
func (t *Tray) Run(icon []byte) {
	systray.Run(func() {
		t.onReady(icon)
	}, t.onExit)
}

// Quit removes the tray icon, making Run return.
func (t *Tray) Quit() {
	if t.shuttingDown.CompareAndSwap(false, true) {
		systray.Quit()
	}
}

func (t *Tray) onReady(icon []byte) {
	if icon != nil {
		systray.SetIcon(icon)
	}
	systray.SetTitle("SoHConfig")
	systray.SetTooltip("SoHConfig - " + t.url)

	t.menuOpen = systray.AddMenuItem("Open Editor", "Open the binding editor")
	t.menuSave = systray.AddMenuItem("Save Binding", "Save the selected device's binding")

	menuBackend := systray.AddMenuItem("Graphics Backend", "")
	current, err := t.actions.Backend()
	if err != nil {
		dl.Warnf("backend unavailable: %v", err)
		menuBackend.Disable()
	}
	for _, b := range session.Backends() {
		item := menuBackend.AddSubMenuItemCheckbox(b.DisplayName, b.Value, err == nil && b.Value == current.Value)
		t.backends = append(t.backends, backendItem{entry: b, item: item})
	}

	systray.AddSeparator()
	t.menuExit = systray.AddMenuItem("Exit", "Quit application")

	go t.handleMenuClicks()
	for i := range t.backends {
		go t.handleBackendClicks(i)
	}

	dl.Info("system tray initialized")
}

func (t *Tray) handleMenuClicks() {
	for {
		select {
		case <-t.menuOpen.ClickedCh:
			if !t.shuttingDown.Load() {
				openURL(t.url)
			}
		case <-t.menuSave.ClickedCh:
			if err := t.actions.Save(); err != nil {
				dl.Errorf("save failed: %v", err)
			}
		case <-t.menuExit.ClickedCh:
			if t.shuttingDown.CompareAndSwap(false, true) {
				t.once.Do(t.shutdownFunc)
				systray.Quit()
				return
			}
		}
	}
}

func (t *Tray) handleBackendClicks(i int) {
	for range t.backends[i].item.ClickedCh {
		if t.shuttingDown.Load() {
			return
		}
		if err := t.actions.SetBackend(t.backends[i].entry.Value); err != nil {
			dl.Errorf("setting backend failed: %v", err)
			continue
		}
		for j, b := range t.backends {
			if j == i {
				b.item.Check()
			} else {
				b.item.Uncheck()
			}
		}
	}
}

func (t *Tray) onExit() {
	t.shuttingDown.Store(true)
	dl.Info("system tray exiting")
}

// browserCommand returns the command that opens url in the default browser.
func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		return "open", []string{url}
	default:
		return "xdg-open", []string{url}
	}
}

func openURL(url string) {
	name, args := browserCommand(runtime.GOOS, url)
	if err := exec.Command(name, args...).Start(); err != nil {
		dl.Errorf("failed to open browser: %v", err)
	}
}
