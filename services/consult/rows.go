package consult

import (
	"context"
	"slices"
)

// LookupClientName fetches the client of a row and shows its name in a
// notice. The row itself is left as is.
func (v *View) LookupClientName(ctx context.Context, rowIndex int, clientID int) {
	client, err := v.clients.GetByID(ctx, clientID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.logger.Warn("could not get client name", "row", rowIndex, "client_id", clientID, "err", err.Error())
		v.push(LevelError, msgClientNameFailed, actionClose, v.options.ShortNotice)
		return
	}
	v.push(LevelInfo, msgClientNameIs+client.Name, actionOK, v.options.LongNotice)
}

// RequestDelete opens the delete confirmation dialog for the document at
// rowIndex. The dialog only knows the index and id; the list is changed by
// CloseDialog once the dialog reports its result.
func (v *View) RequestDelete(rowIndex int, documentID int) (*DeleteDialog, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.dialog != nil {
		return nil, ErrDialogOpen
	}
	if rowIndex < 0 || rowIndex >= len(v.rows) {
		return nil, ErrRowOutOfRange
	}
	if v.rows[rowIndex].ID != documentID {
		return nil, ErrRowMismatch
	}

	v.dialog = newDeleteDialog(v.logger, v.documents, v, v.options, rowIndex, documentID)
	return v.dialog, nil
}

// Dialog returns the open delete dialog, or nil.
func (v *View) Dialog() *DeleteDialog {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dialog
}

// CloseDialog dismisses the open dialog. Only a Deleted result removes a
// row, and only the row the dialog was opened for.
func (v *View) CloseDialog(result DialogResult) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	dialog := v.dialog
	if dialog == nil {
		return ErrNoDialog
	}
	v.dialog = nil

	if result != Deleted {
		return nil
	}
	// A search may have replaced the table while the dialog was open.
	if dialog.RowIndex >= len(v.rows) || v.rows[dialog.RowIndex].ID != dialog.DocumentID {
		v.logger.Warn("deleted document no longer at its row", "row", dialog.RowIndex, "document_id", dialog.DocumentID)
		return nil
	}
	v.rows = slices.Delete(v.rows, dialog.RowIndex, dialog.RowIndex+1)

	return nil
}
