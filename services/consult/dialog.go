package consult

import (
	"context"
	"fmt"
	"sync"

	"github.com/meghashyamc/docregistry/logger"
)

// DialogResult is what the delete dialog hands back when it closes.
type DialogResult int

const (
	Cancelled DialogResult = iota
	Deleted
	Failed
)

func (r DialogResult) String() string {
	switch r {
	case Cancelled:
		return "cancelled"
	case Deleted:
		return "deleted"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("DialogResult(%d)", int(r))
	}
}

func (r DialogResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// DeleteDialog confirms and performs the deletion of one document. It holds
// a snapshot of the row index and document id and never reads or changes
// the table it was opened from.
type DeleteDialog struct {
	RowIndex   int
	DocumentID int

	logger    logger.Logger
	documents DocumentLookup
	notifier  notifier
	options   Options

	mu    sync.Mutex
	state OpState
	// done is set once the dialog has produced its result.
	done bool
}

func newDeleteDialog(logger logger.Logger, documents DocumentLookup, notifier notifier, options Options, rowIndex int, documentID int) *DeleteDialog {
	return &DeleteDialog{
		RowIndex:   rowIndex,
		DocumentID: documentID,
		logger:     logger,
		documents:  documents,
		notifier:   notifier,
		options:    options,
	}
}

// Delete asks the backend to delete the document. The returned result is
// Deleted or Failed; ErrBusy means a delete is already running and
// ErrNoDialog that the dialog has already produced its result.
func (d *DeleteDialog) Delete(ctx context.Context) (DialogResult, error) {
	d.mu.Lock()
	if d.done {
		d.mu.Unlock()
		return Cancelled, ErrNoDialog
	}
	if d.state == StateLoading {
		d.mu.Unlock()
		return Cancelled, ErrBusy
	}
	d.state = StateLoading
	d.mu.Unlock()

	err := d.documents.Delete(ctx, d.DocumentID)

	// The notifier locks the view, which may be reading this dialog, so
	// notify only after d.mu is released.
	result, notice := Deleted, newNotice(LevelInfo, msgDocumentDeleted, actionClose, d.options.LongNotice)
	d.mu.Lock()
	if err != nil {
		d.logger.Warn("could not delete document", "document_id", d.DocumentID, "err", err.Error())
		d.state = StateError
		result, notice = Failed, newNotice(LevelError, msgDocumentNotDeleted, actionClose, d.options.LongNotice)
	} else {
		d.state = StateIdle
	}
	d.done = true
	d.mu.Unlock()

	d.notifier.notify(notice)
	return result, nil
}

// Cancel closes the dialog without calling the backend. It is refused
// while a delete is running or once the dialog has a result.
func (d *DeleteDialog) Cancel() (DialogResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done {
		return Cancelled, ErrNoDialog
	}
	if d.state == StateLoading {
		return Cancelled, ErrBusy
	}
	d.done = true
	return Cancelled, nil
}

// Deleting reports whether the delete call is outstanding.
func (d *DeleteDialog) Deleting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state == StateLoading
}
