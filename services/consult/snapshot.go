package consult

import "github.com/meghashyamc/docregistry/models"

type Row struct {
	Index int `json:"index"`
	models.Document
	TypeName string `json:"tipo_nome"`
}

type DialogSnapshot struct {
	RowIndex   int  `json:"row_index"`
	DocumentID int  `json:"document_id"`
	Deleting   bool `json:"deleting"`
}

// Snapshot is a copy of everything a renderer needs to draw the view.
type Snapshot struct {
	Title        string                `json:"title"`
	Form         Form                  `json:"form"`
	Types        []models.DocumentType `json:"types"`
	TypesState   OpState               `json:"types_state"`
	Candidates   []models.Client       `json:"candidates"`
	ClientsState OpState               `json:"clients_state"`
	SearchState  OpState               `json:"search_state"`
	Awaiting     bool                  `json:"awaiting"`
	ShowTable    bool                  `json:"show_table"`
	Columns      []string              `json:"columns"`
	Rows         []Row                 `json:"rows"`
	Dialog       *DialogSnapshot       `json:"dialog"`
	Notices      []Notice              `json:"notices"`
}

// Snapshot copies the view state and hands over the pending notices, so
// every notice is shown once.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	var dialog *DialogSnapshot
	if v.dialog != nil {
		dialog = &DialogSnapshot{
			RowIndex:   v.dialog.RowIndex,
			DocumentID: v.dialog.DocumentID,
			Deleting:   v.dialog.Deleting(),
		}
	}

	notices := v.notices
	v.notices = nil
	if notices == nil {
		notices = []Notice{}
	}

	return Snapshot{
		Title:        Title,
		Form:         v.form,
		Types:        append([]models.DocumentType{}, v.types...),
		TypesState:   v.typesState,
		Candidates:   append([]models.Client{}, v.filtered...),
		ClientsState: v.clientsState,
		SearchState:  v.searchState,
		Awaiting:     v.searchState == StateLoading,
		ShowTable:    v.showTable,
		Columns:      append([]string{}, Columns...),
		Rows:         v.tableRows(),
		Dialog:       dialog,
		Notices:      notices,
	}
}

// Rows returns the result table with resolved type names, leaving pending
// notices in place.
func (v *View) Rows() []Row {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tableRows()
}

func (v *View) tableRows() []Row {
	rows := make([]Row, len(v.rows))
	for i, document := range v.rows {
		rows[i] = Row{Index: i, Document: document, TypeName: v.typeName(document.TypeID)}
	}
	return rows
}
