package ui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nio/internal/format"
	"nio/internal/i18n"
	"nio/internal/logger"
	"nio/internal/manager"
	"nio/internal/models"
	"nio/internal/notify"
	"nio/internal/router"
	"nio/internal/store"
	"nio/internal/styles"
)

// ChatWrapper is the composer: draft input, attachment, toggles and the
// send pipeline.
type ChatWrapper struct {
	store  *store.Store
	sender Sender
	notify *notify.Center
	t      i18n.Translator
	log    *slog.Logger

	TextInput textarea.Model
	File      models.FileObject
	expanded  bool
	sending   bool

	attachOpen bool
	attach     textinput.Model

	ModelSelectorOpen  bool
	SelectedModelIndex int
	ModelViewport      viewport.Model

	pendingQuery string
	wasAuth      bool

	width int
}

func NewChatWrapper(st *store.Store, sender Sender, center *notify.Center, t i18n.Translator, query string) *ChatWrapper {
	ti := textarea.New()
	ti.Placeholder = t.T("chat.placeholder")
	ti.Prompt = "❯ "
	ti.ShowLineNumbers = false
	ti.CharLimit = InputCharLimit
	ti.MaxHeight = ExpandedHeight
	ti.SetHeight(1)
	ti.SetWidth(60)
	prompt := lipgloss.NewStyle().Foreground(styles.CurrentTheme.Primary).Bold(true)
	ti.FocusedStyle.Prompt = prompt
	ti.BlurredStyle.Prompt = prompt
	ti.FocusedStyle.Placeholder = styles.HintStyle
	ti.BlurredStyle.Placeholder = styles.HintStyle
	ti.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ti.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ti.Focus()

	at := textinput.New()
	at.Placeholder = t.T("chat.file-prompt")
	at.CharLimit = 1024

	sender.SetDispatch(st)

	return &ChatWrapper{
		store:         st,
		sender:        sender,
		notify:        center,
		t:             t,
		log:           logger.WithComponent("composer"),
		TextInput:     ti,
		attach:        at,
		ModelViewport: viewport.New(ModalWidth-6, 12),
		pendingQuery:  query,
		width:         60,
	}
}

// PendingQuery is the startup prompt not yet sent.
func (w *ChatWrapper) PendingQuery() string {
	return w.pendingQuery
}

// Modal reports whether a dialog owned by the composer is open.
func (w *ChatWrapper) Modal() bool {
	return w.attachOpen || w.ModelSelectorOpen
}

func (w *ChatWrapper) SetWidth(width int) {
	w.width = width
	w.TextInput.SetWidth(max(width-4, 10))
	w.layout()
}

// Height is the number of rows the composer occupies.
func (w *ChatWrapper) Height() int {
	h := w.TextInput.Height() + 2 + 1
	if !w.File.Empty() {
		h++
	}
	return h
}

func (w *ChatWrapper) layout() {
	if w.expanded {
		w.TextInput.SetHeight(ExpandedHeight)
		return
	}
	lines := WrappedLineCount(w.TextInput.Value(), max(w.TextInput.Width()-2, 1))
	w.TextInput.SetHeight(min(lines, InputMaxHeight))
}

// sync reacts to a new store snapshot: the one-time model upgrade on login
// and the startup prompt once the store is initialized.
func (w *ChatWrapper) sync(st store.State) tea.Cmd {
	if st.Authenticated && !w.wasAuth {
		if upgraded, ok := models.UpgradeFor(st.Model); ok {
			w.log.Info("upgrade model on login", "from", st.Model, "to", upgraded)
			w.store.Dispatch(store.SetModel{Model: upgraded})
		}
	}
	w.wasAuth = st.Authenticated
	if st.Init && !st.Authenticated && st.Model != models.BaselineModel {
		w.log.Info("anonymous session limited to baseline model", "from", st.Model, "to", models.BaselineModel)
		w.store.Dispatch(store.SetModel{Model: models.BaselineModel})
	}

	if !st.Init || w.pendingQuery == "" {
		return nil
	}
	query := strings.TrimSpace(w.pendingQuery)
	w.pendingQuery = ""
	if query == "" {
		return nil
	}
	return w.send(query, false)
}

// Submit sends the draft. Blank drafts never reach the sender.
func (w *ChatWrapper) Submit() tea.Cmd {
	if w.sending {
		return nil
	}
	raw := w.TextInput.Value()
	composed := format.FormatMessage(w.File, raw)
	if strings.TrimSpace(raw) == "" || strings.TrimSpace(composed) == "" {
		return nil
	}
	return w.send(composed, true)
}

func (w *ChatWrapper) send(message string, fromDraft bool) tea.Cmd {
	st := w.store.Snapshot()
	props := manager.SendProps{Message: message, Web: st.Web, Model: st.Model}
	sender, t, authenticated := w.sender, w.t, st.Authenticated
	if fromDraft {
		w.sending = true
	}
	return func() tea.Msg {
		ok := sender.Send(context.Background(), t, authenticated, props)
		return sendResultMsg{ok: ok, fromDraft: fromDraft}
	}
}

func (w *ChatWrapper) ClearFile() {
	w.File = models.FileObject{}
}

func (w *ChatWrapper) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case sendResultMsg:
		if !msg.fromDraft {
			return nil
		}
		w.sending = false
		if msg.ok {
			w.ClearFile()
			w.TextInput.Reset()
			w.layout()
		}
		return nil

	case fileLoadedMsg:
		if msg.err != nil {
			w.log.Warn("attach file", "error", msg.err)
			return w.notify.Error(w.t.T("chat.file-failed"), msg.err.Error())
		}
		if utf8.RuneCountInString(msg.file.Content) > FileContentMax {
			return w.notify.Error(w.t.T("chat.file-failed"), w.t.T("chat.file-too-large", FileContentMax))
		}
		w.File = msg.file
		return nil

	case tea.KeyMsg:
		if w.ModelSelectorOpen {
			return w.updateSelector(msg)
		}
		if w.attachOpen {
			return w.updateAttach(msg)
		}
		return w.updateKeys(msg)
	}

	var cmd tea.Cmd
	w.TextInput, cmd = w.TextInput.Update(msg)
	return cmd
}

func (w *ChatWrapper) updateKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.NewlineAlt):
		w.TextInput.InsertString("\n")
		w.layout()
		return nil
	case key.Matches(msg, keys.Send):
		return w.Submit()
	case key.Matches(msg, keys.Web):
		w.store.Dispatch(store.SetWeb{Web: !w.store.Web()})
		return nil
	case key.Matches(msg, keys.Model):
		w.OpenModelSelector()
		return nil
	case key.Matches(msg, keys.Attach):
		if !w.store.Authenticated() {
			return w.notify.Info(w.t.T("login-require"), "")
		}
		w.attachOpen = true
		w.attach.SetValue("")
		w.TextInput.Blur()
		return w.attach.Focus()
	case key.Matches(msg, keys.Detach):
		w.ClearFile()
		return nil
	case key.Matches(msg, keys.Expand):
		w.expanded = !w.expanded
		w.layout()
		return nil
	case key.Matches(msg, keys.Generate):
		if len(w.store.Messages()) == 0 {
			return router.Navigate(router.RouteGenerate)
		}
		return nil
	}

	var cmd tea.Cmd
	w.TextInput, cmd = w.TextInput.Update(msg)
	w.layout()
	return cmd
}

func (w *ChatWrapper) updateAttach(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		w.closeAttach()
		return nil
	case tea.KeyEnter:
		path := strings.TrimSpace(w.attach.Value())
		w.closeAttach()
		if path == "" {
			return nil
		}
		return loadFile(path)
	}
	var cmd tea.Cmd
	w.attach, cmd = w.attach.Update(msg)
	return cmd
}

func (w *ChatWrapper) closeAttach() {
	w.attachOpen = false
	w.attach.Blur()
	w.TextInput.Focus()
}

func loadFile(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return fileLoadedMsg{err: err}
		}
		if !utf8.Valid(data) {
			return fileLoadedMsg{err: fmt.Errorf("%s is not a text file", filepath.Base(path))}
		}
		return fileLoadedMsg{file: models.FileObject{Name: filepath.Base(path), Content: string(data)}}
	}
}

func (w *ChatWrapper) OpenModelSelector() {
	w.ModelSelectorOpen = true
	if _, idx, ok := models.FindModel(w.store.Model()); ok {
		w.SelectedModelIndex = idx
	}
	w.UpdateModelSelectorContent()
	w.SyncModelViewportScroll()
}

func (w *ChatWrapper) updateSelector(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Model):
		w.ModelSelectorOpen = false
	case key.Matches(msg, keys.Up):
		w.SelectedModelIndex = (w.SelectedModelIndex - 1 + len(models.Catalog)) % len(models.Catalog)
	case key.Matches(msg, keys.Down):
		w.SelectedModelIndex = (w.SelectedModelIndex + 1) % len(models.Catalog)
	case key.Matches(msg, keys.Select):
		w.ModelSelectorOpen = false
		return w.SelectModel(models.Catalog[w.SelectedModelIndex].ID)
	}
	w.SyncModelViewportScroll()
	w.UpdateModelSelectorContent()
	return nil
}

// SelectModel applies the login-required policy: anonymous users keep the
// baseline model.
func (w *ChatWrapper) SelectModel(id string) tea.Cmd {
	if !w.store.Authenticated() && id != models.BaselineModel {
		return w.notify.Info(w.t.T("login-require"), "")
	}
	w.store.Dispatch(store.SetModel{Model: id})
	return nil
}

func (w *ChatWrapper) UpdateModelSelectorContent() {
	current := w.store.Model()
	authenticated := w.store.Authenticated()
	width := w.ModelViewport.Width

	var items []string
	var lastProvider string
	for i, mdl := range models.Catalog {
		if mdl.Provider != lastProvider {
			if lastProvider != "" {
				items = append(items, "")
			}
			items = append(items, styles.ModalHeaderStyle.
				Foreground(styles.GetProviderColor(mdl.Provider)).
				Render(mdl.Provider))
			lastProvider = mdl.Provider
		}

		name := "  " + mdl.Name
		if mdl.ID == current {
			name = "● " + mdl.Name
		}
		if !authenticated && mdl.ID != models.BaselineModel {
			name += " 🔒"
		}

		var row string
		if i == w.SelectedModelIndex {
			row = styles.ModalSelectedStyle.Width(width).Render(name)
		} else {
			style := styles.ModalItemStyle.Width(width)
			if mdl.ID == current {
				style = style.Foreground(styles.CurrentTheme.Secondary)
			}
			row = style.Render(name)
		}
		items = append(items, row)
	}
	w.ModelViewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, items...))
}

// SyncModelViewportScroll keeps the selected row and its provider header visible.
func (w *ChatWrapper) SyncModelViewportScroll() {
	y := 0
	var lastProvider string
	for i, mdl := range models.Catalog {
		top := y
		if mdl.Provider != lastProvider {
			if lastProvider != "" {
				y++
			}
			top = y
			y++
			lastProvider = mdl.Provider
		}
		if i == w.SelectedModelIndex {
			if y+1 > w.ModelViewport.YOffset+w.ModelViewport.Height {
				w.ModelViewport.SetYOffset(y + 1 - w.ModelViewport.Height)
			}
			if top < w.ModelViewport.YOffset {
				w.ModelViewport.SetYOffset(top)
			}
			return
		}
		y++
	}
}

func (w *ChatWrapper) View(focused bool) string {
	var parts []string
	if !w.File.Empty() {
		parts = append(parts, styles.FileChipStyle.Render("📎 "+w.File.Name)+styles.HintStyle.Render(keys.Detach.Help().Key+" remove"))
	}
	box := styles.InputBoxStyle
	if !focused {
		box = styles.InputBlurStyle
	}
	parts = append(parts, box.Width(max(w.width-2, 10)).Render(w.TextInput.View()))

	web := styles.ToggleOffStyle.Render(w.t.T("chat.web"))
	if w.store.Web() {
		web = styles.ToggleOnStyle.Render(w.t.T("chat.web"))
	}
	model := w.store.Model()
	if mdl, _, ok := models.FindModel(model); ok {
		model = mdl.Name
	}
	parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, web, " ", styles.ModelNameStyle.Render(model)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// ModalView renders the model selector or the attach prompt, if open.
func (w *ChatWrapper) ModalView() string {
	switch {
	case w.ModelSelectorOpen:
		return lipgloss.JoinVertical(lipgloss.Left,
			styles.ModalTitleStyle.Render(w.t.T("chat.select-model")),
			w.ModelViewport.View(),
			styles.HintStyle.PaddingTop(1).Render("↑/↓: navigate • enter: select • esc: close"),
		)
	case w.attachOpen:
		return lipgloss.JoinVertical(lipgloss.Left,
			styles.ModalTitleStyle.Render(w.t.T("chat.file-prompt")),
			w.attach.View(),
			styles.HintStyle.PaddingTop(1).Render("enter: attach • esc: cancel"),
		)
	}
	return ""
}

// Landing is shown while the conversation has no messages.
func (w *ChatWrapper) Landing(width, height int) string {
	card := styles.ProductStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render(w.t.T("generate.title")),
		styles.HintStyle.Render(w.t.T("generate.description")),
		"",
		styles.ToggleOnStyle.Render(keys.Generate.Help().Key+" → "+router.RouteGenerate),
	))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
