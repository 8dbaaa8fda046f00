// Package consult holds the document consult view: the search form, the
// client name autocomplete, the result table and the delete confirmation
// dialog. One View serves one user session; renderers read it through
// Snapshot.
package consult

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/meghashyamc/docregistry/logger"
	"github.com/meghashyamc/docregistry/models"
)

const Title = "Consulta de Documentos"

// Columns of the result table, in display order.
var Columns = []string{"id", "nome", "tipo", "cliente", "caixa", "data", "observacao", "acoes"}

var (
	ErrBusy          = errors.New("operation already in progress")
	ErrDialogOpen    = errors.New("a delete dialog is already open")
	ErrNoDialog      = errors.New("no delete dialog is open")
	ErrRowOutOfRange = errors.New("row index out of range")
	ErrRowMismatch   = errors.New("row does not hold the given document")
)

type ClientLookup interface {
	SearchByName(ctx context.Context, fragment string) ([]models.Client, error)
	GetByID(ctx context.Context, id int) (models.Client, error)
}

type DocumentLookup interface {
	Types(ctx context.Context) ([]models.DocumentType, error)
	Search(ctx context.Context, filter models.SearchFilter) ([]models.Document, error)
	Delete(ctx context.Context, id int) error
}

type Options struct {
	// EditPath is the edit view location; a %d verb receives the document id.
	EditPath string
	// ShortNotice is how long search and lookup failures stay on screen;
	// LongNotice is used for client names and delete outcomes.
	ShortNotice time.Duration
	LongNotice  time.Duration
}

func (o *Options) setDefaults() {
	if o.EditPath == "" {
		o.EditPath = "/documentos/form/%d"
	}
	if o.ShortNotice == 0 {
		o.ShortNotice = 2 * time.Second
	}
	if o.LongNotice == 0 {
		o.LongNotice = 3 * time.Second
	}
}

// Form mirrors the search form fields. Zero numeric values are empty fields.
type Form struct {
	ClientName string `json:"nome_cliente"`
	ClientID   int    `json:"id_cliente"`
	Box        int    `json:"caixa"`
	TypeID     int    `json:"tipo"`
	Name       string `json:"nome"`
}

func (f Form) filter() models.SearchFilter {
	return models.SearchFilter{
		ClientID: f.ClientID,
		Box:      f.Box,
		TypeID:   f.TypeID,
		Name:     f.Name,
	}
}

type View struct {
	logger    logger.Logger
	clients   ClientLookup
	documents DocumentLookup
	options   Options

	mu sync.Mutex

	form Form

	types      []models.DocumentType
	typesState OpState

	pool         []models.Client
	filtered     []models.Client
	clientsState OpState
	clientsSeq   uint64

	rows        []models.Document
	searchState OpState
	showTable   bool

	dialog  *DeleteDialog
	notices []Notice
}

func New(logger logger.Logger, clients ClientLookup, documents DocumentLookup, options Options) *View {
	options.setDefaults()
	return &View{
		logger:    logger,
		clients:   clients,
		documents: documents,
		options:   options,
	}
}

// Init loads the document type taxonomy. It is meant to run once, when the
// view is created.
func (v *View) Init(ctx context.Context) {
	v.mu.Lock()
	v.typesState = StateLoading
	v.mu.Unlock()

	types, err := v.documents.Types(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.logger.Warn("could not load document types", "err", err.Error())
		v.typesState = StateError
		v.push(LevelError, msgTypesFailed, actionClose, v.options.ShortNotice)
		return
	}
	v.types = types
	v.typesState = StateIdle
}

// UpdateForm replaces the form fields with submitted values.
func (v *View) UpdateForm(form Form) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form = form
}

func (v *View) Form() Form {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form
}

// TypeName resolves a document type id against the loaded taxonomy.
func (v *View) TypeName(id int) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.typeName(id)
}

func (v *View) typeName(id int) string {
	for _, documentType := range v.types {
		if documentType.ID == id {
			return documentType.Name
		}
	}
	return ""
}

// Edit returns where the edit view for documentID lives.
func (v *View) Edit(documentID int) string {
	if strings.Contains(v.options.EditPath, "%d") {
		return fmt.Sprintf(v.options.EditPath, documentID)
	}
	return fmt.Sprintf("%s/%d", strings.TrimSuffix(v.options.EditPath, "/"), documentID)
}

func (v *View) notify(notice Notice) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notices = append(v.notices, notice)
}

// push expects v.mu to be held.
func (v *View) push(level Level, message string, action string, duration time.Duration) {
	v.notices = append(v.notices, newNotice(level, message, action, duration))
}
