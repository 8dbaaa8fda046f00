// Package tui is a terminal front-end for the document consult view. It
// drives a consult.View in-process and redraws from its snapshots.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/meghashyamc/docregistry/services/consult"
)

const (
	fieldClient = iota
	fieldBox
	fieldType
	fieldName
	fieldTable
)

const tableHeight = 12

var fieldLabels = [...]string{"Cliente", "Caixa", "Tipo", "Nome"}

// typesLoadedMsg is sent once the document types have been fetched.
type typesLoadedMsg struct{}

// clientsMsg is sent when a client name change has been handled, whether
// or not it reached the backend.
type clientsMsg struct{}

// searchDoneMsg carries the outcome of a search. err is only set when the
// search was refused.
type searchDoneMsg struct {
	err error
}

type lookupDoneMsg struct{}

// dialogClosedMsg is sent once the delete dialog has been confirmed or
// cancelled and closed.
type dialogClosedMsg struct {
	result consult.DialogResult
	err    error
}

// noticeExpiredMsg clears the status line, unless a newer notice took it.
type noticeExpiredMsg struct {
	seq int
}

type status struct {
	text  string
	error bool
}

type Model struct {
	ctx    context.Context
	view   *consult.View
	keys   KeyMap
	styles Styles

	inputs    []textinput.Model
	table     table.Model
	focus     int
	candidate int

	snapshot consult.Snapshot
	// searching is set from the key press until the search result arrives.
	searching bool

	status    status
	statusSeq int

	width int
}

func NewModel(ctx context.Context, view *consult.View) Model {
	styles := DefaultStyles()

	inputs := make([]textinput.Model, len(fieldLabels))
	for i := range inputs {
		input := textinput.New()
		input.Prompt = ""
		input.Cursor.SetMode(cursor.CursorStatic)
		inputs[i] = input
	}
	inputs[fieldClient].Placeholder = "mínimo 3 letras"
	inputs[fieldClient].CharLimit = 100
	inputs[fieldBox].CharLimit = 9
	inputs[fieldType].Placeholder = "id do tipo"
	inputs[fieldType].CharLimit = 9
	inputs[fieldName].CharLimit = 200
	inputs[fieldClient].Focus()

	columns := make([]table.Column, 0, len(consult.Columns))
	for _, title := range consult.Columns {
		// Row actions are key bindings here.
		if title == "acoes" {
			continue
		}
		columns = append(columns, table.Column{Title: title, Width: columnWidth(title)})
	}

	model := Model{
		ctx:    ctx,
		view:   view,
		keys:   DefaultKeyMap,
		styles: styles,
		inputs: inputs,
		table: table.New(
			table.WithColumns(columns),
			table.WithHeight(tableHeight),
			table.WithStyles(styles.Table),
		),
	}
	model.snapshot = view.Snapshot()
	return model
}

func columnWidth(title string) int {
	switch title {
	case "id", "caixa", "cliente":
		return 8
	case "data":
		return 10
	case "nome", "observacao":
		return 28
	default:
		return 16
	}
}

func (model Model) Init() tea.Cmd {
	view, ctx := model.view, model.ctx
	return func() tea.Msg {
		view.Init(ctx)
		return typesLoadedMsg{}
	}
}

func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)

	case typesLoadedMsg, lookupDoneMsg:
		return model.refresh()

	case clientsMsg:
		// Name changes are handled concurrently; the input holds the latest.
		if value := model.inputs[fieldClient].Value(); model.view.Form().ClientName != value {
			model.view.Refilter(value)
		}
		return model.refresh()

	case searchDoneMsg:
		model.searching = false
		next, cmd := model.refreshWithError(message.err)
		updated := next.(Model)
		if len(updated.snapshot.Rows) > 0 {
			updated.table.SetCursor(0)
		}
		return updated, cmd

	case dialogClosedMsg:
		return model.refreshWithError(message.err)

	case noticeExpiredMsg:
		if message.seq == model.statusSeq {
			model.status = status{}
		}
		return model, nil
	}

	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(message, model.keys.Quit) {
		return model, tea.Quit
	}

	if model.snapshot.Dialog != nil {
		switch {
		case key.Matches(message, model.keys.Confirm):
			return model, model.confirmDelete()
		case key.Matches(message, model.keys.Cancel):
			return model, model.cancelDelete()
		}
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.NextField):
		model.setFocus((model.focus + 1) % (fieldTable + 1))
		return model, nil
	case key.Matches(message, model.keys.PreviousField):
		model.setFocus((model.focus + fieldTable) % (fieldTable + 1))
		return model, nil
	case key.Matches(message, model.keys.Search):
		if model.searching {
			return model, nil
		}
		model.searching = true
		return model, model.search()
	case key.Matches(message, model.keys.Clear):
		return model.clear()
	case key.Matches(message, model.keys.NextCandidate):
		return model.nextCandidate()
	}

	if model.focus == fieldTable {
		return model.handleTableKey(message)
	}

	before := model.inputs[model.focus].Value()
	var cmd tea.Cmd
	model.inputs[model.focus], cmd = model.inputs[model.focus].Update(message)
	if model.focus == fieldClient && model.inputs[fieldClient].Value() != before {
		model.candidate = 0
		return model, tea.Batch(cmd, model.suggest(model.inputs[fieldClient].Value()))
	}
	return model, cmd
}

func (model Model) handleTableKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	row, ok := model.selectedRow()

	switch {
	case key.Matches(message, model.keys.LookupClient):
		if !ok {
			return model, nil
		}
		return model, model.lookupClient(row)

	case key.Matches(message, model.keys.Edit):
		if !ok {
			return model, nil
		}
		cmd := model.setStatus("Editar documento: "+model.view.Edit(row.ID), false)
		return model, cmd

	case key.Matches(message, model.keys.Delete):
		if !ok {
			return model, nil
		}
		if _, err := model.view.RequestDelete(row.Index, row.ID); err != nil {
			cmd := model.setStatus(err.Error(), true)
			return model, cmd
		}
		return model.refresh()
	}

	var cmd tea.Cmd
	model.table, cmd = model.table.Update(message)
	return model, cmd
}

func (model *Model) setFocus(focus int) {
	model.focus = focus
	for i := range model.inputs {
		if i == focus {
			model.inputs[i].Focus()
		} else {
			model.inputs[i].Blur()
		}
	}
	if focus == fieldTable {
		model.table.Focus()
	} else {
		model.table.Blur()
	}
}

func (model Model) selectedRow() (consult.Row, bool) {
	if !model.snapshot.ShowTable {
		return consult.Row{}, false
	}
	cursor := model.table.Cursor()
	if cursor < 0 || cursor >= len(model.snapshot.Rows) {
		return consult.Row{}, false
	}
	return model.snapshot.Rows[cursor], true
}

// form reads the inputs on top of the view's form, which keeps the client
// id bound by the last candidate selection.
func (model Model) form() consult.Form {
	form := model.view.Form()
	form.ClientName = model.inputs[fieldClient].Value()
	form.Box = atoi(model.inputs[fieldBox].Value())
	form.TypeID = atoi(model.inputs[fieldType].Value())
	form.Name = strings.TrimSpace(model.inputs[fieldName].Value())
	return form
}

func atoi(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (model Model) suggest(fragment string) tea.Cmd {
	view, ctx := model.view, model.ctx
	return func() tea.Msg {
		view.OnClientNameChange(ctx, fragment)
		return clientsMsg{}
	}
}

func (model Model) search() tea.Cmd {
	view, ctx := model.view, model.ctx
	form := model.form()
	return func() tea.Msg {
		return searchDoneMsg{err: view.SearchForm(ctx, form)}
	}
}

func (model Model) clear() (tea.Model, tea.Cmd) {
	model.view.Clear()
	for i := range model.inputs {
		model.inputs[i].SetValue("")
	}
	model.candidate = 0
	return model.refresh()
}

// nextCandidate cycles through the filtered clients, binding each one to
// the form as it comes up.
func (model Model) nextCandidate() (tea.Model, tea.Cmd) {
	candidates := model.snapshot.Candidates
	if len(candidates) == 0 {
		return model, nil
	}
	model.candidate %= len(candidates)
	client := candidates[model.candidate]
	model.candidate++

	model.inputs[fieldClient].SetValue(client.Name)
	model.view.OnClientSelected(client.Name)
	form := model.view.Form()
	form.ClientName = client.Name
	model.view.UpdateForm(form)

	return model, nil
}

func (model Model) lookupClient(row consult.Row) tea.Cmd {
	view, ctx := model.view, model.ctx
	return func() tea.Msg {
		view.LookupClientName(ctx, row.Index, row.ClientID)
		return lookupDoneMsg{}
	}
}

func (model Model) confirmDelete() tea.Cmd {
	view, ctx := model.view, model.ctx
	dialog := view.Dialog()
	if dialog == nil || model.snapshot.Dialog.Deleting {
		return nil
	}
	model.snapshot.Dialog.Deleting = true
	return func() tea.Msg {
		result, err := dialog.Delete(ctx)
		if err != nil {
			return dialogClosedMsg{result: result, err: err}
		}
		return dialogClosedMsg{result: result, err: view.CloseDialog(result)}
	}
}

func (model Model) cancelDelete() tea.Cmd {
	view := model.view
	dialog := view.Dialog()
	if dialog == nil {
		return nil
	}
	return func() tea.Msg {
		result, err := dialog.Cancel()
		if err != nil {
			return dialogClosedMsg{result: result, err: err}
		}
		return dialogClosedMsg{result: result, err: view.CloseDialog(result)}
	}
}

// refresh takes a new snapshot and moves its notices to the status line.
func (model Model) refresh() (tea.Model, tea.Cmd) {
	model.snapshot = model.view.Snapshot()

	rows := make([]table.Row, len(model.snapshot.Rows))
	for i, row := range model.snapshot.Rows {
		rows[i] = table.Row{
			strconv.Itoa(row.ID),
			row.Name,
			row.TypeName,
			strconv.Itoa(row.ClientID),
			strconv.Itoa(row.Box),
			row.Date.String(),
			row.Note,
		}
	}
	model.table.SetRows(rows)

	var cmd tea.Cmd
	for _, notice := range model.snapshot.Notices {
		cmd = model.showNotice(notice)
	}
	return model, cmd
}

func (model Model) refreshWithError(err error) (tea.Model, tea.Cmd) {
	if err == nil {
		return model.refresh()
	}
	statusCmd := model.setStatus(err.Error(), true)
	next, cmd := model.refresh()
	return next, tea.Batch(statusCmd, cmd)
}

func (model *Model) showNotice(notice consult.Notice) tea.Cmd {
	model.statusSeq++
	model.status = status{text: notice.Message, error: notice.Level == consult.LevelError}
	return model.expireStatus(notice.Duration())
}

func (model *Model) setStatus(text string, isError bool) tea.Cmd {
	model.statusSeq++
	model.status = status{text: text, error: isError}
	return model.expireStatus(3 * time.Second)
}

func (model *Model) expireStatus(after time.Duration) tea.Cmd {
	seq := model.statusSeq
	return tea.Tick(after, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (model Model) View() string {
	var b strings.Builder
	snapshot := model.snapshot

	b.WriteString(model.styles.Title.Render(snapshot.Title))
	b.WriteString("\n")

	for i, label := range fieldLabels {
		labelStyle := model.styles.Label
		if i == model.focus {
			labelStyle = model.styles.FocusedLabel
		}
		line := labelStyle.Render(label) + model.inputs[i].View()
		switch i {
		case fieldClient:
			if snapshot.ClientsState == consult.StateLoading {
				line += model.styles.Faint.Render("  carregando...")
			}
			if snapshot.Form.ClientID != 0 {
				line += model.styles.Faint.Render(fmt.Sprintf("  #%d", snapshot.Form.ClientID))
			}
		case fieldType:
			if name := model.view.TypeName(atoi(model.inputs[fieldType].Value())); name != "" {
				line += model.styles.Faint.Render("  " + name)
			}
		}
		b.WriteString(line + "\n")

		if i == fieldClient {
			b.WriteString(model.renderCandidates())
		}
	}

	b.WriteString(model.renderTypes())
	b.WriteString("\n")

	switch {
	case snapshot.Awaiting, model.searching:
		b.WriteString(model.styles.Faint.Render("Consultando...") + "\n")
	case snapshot.ShowTable:
		b.WriteString(model.table.View() + "\n")
	}

	if snapshot.Dialog != nil {
		prompt := fmt.Sprintf("Deseja realmente deletar o documento %d? (y/n)", snapshot.Dialog.DocumentID)
		if snapshot.Dialog.Deleting {
			prompt = fmt.Sprintf("Deletando o documento %d...", snapshot.Dialog.DocumentID)
		}
		b.WriteString(model.styles.Dialog.Render(prompt) + "\n")
	}

	if model.status.text != "" {
		style := model.styles.Info
		if model.status.error {
			style = model.styles.Error
		}
		b.WriteString(style.Render(model.status.text) + "\n")
	}

	b.WriteString(model.renderHelp())
	return b.String()
}

func (model Model) renderCandidates() string {
	var b strings.Builder
	selected := model.candidate - 1
	for i, client := range model.snapshot.Candidates {
		style := model.styles.Candidate
		if i == selected {
			style = model.styles.Selected
		}
		b.WriteString(style.Render(client.Name) + "\n")
	}
	return b.String()
}

func (model Model) renderTypes() string {
	if len(model.snapshot.Types) == 0 {
		return ""
	}
	parts := make([]string, len(model.snapshot.Types))
	for i, documentType := range model.snapshot.Types {
		parts[i] = fmt.Sprintf("%d=%s", documentType.ID, documentType.Name)
	}
	return model.styles.Faint.Render("Tipos: "+strings.Join(parts, "  ")) + "\n"
}

func (model Model) renderHelp() string {
	bindings := []key.Binding{model.keys.Search, model.keys.Clear, model.keys.NextCandidate, model.keys.NextField}
	if model.focus == fieldTable {
		bindings = append(bindings, model.keys.LookupClient, model.keys.Edit, model.keys.Delete)
	}
	if model.snapshot.Dialog != nil {
		bindings = []key.Binding{model.keys.Confirm, model.keys.Cancel}
	}
	bindings = append(bindings, model.keys.Quit)

	parts := make([]string, len(bindings))
	for i, binding := range bindings {
		help := binding.Help()
		parts[i] = help.Key + " " + help.Desc
	}
	return model.styles.Help.Width(max(model.width, 0)).Render(strings.Join(parts, " • "))
}

var _ tea.Model = Model{}
