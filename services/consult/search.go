package consult

import (
	"context"

	"github.com/meghashyamc/docregistry/models"
)

// Search runs the query described by the current form. Backend failures end
// up as notices; the only error returned is ErrBusy, for a search issued
// while another one is still running.
func (v *View) Search(ctx context.Context) error {
	return v.search(ctx, nil)
}

// SearchForm replaces the form and runs the search. A refused search leaves
// the form of the running one in place.
func (v *View) SearchForm(ctx context.Context, form Form) error {
	return v.search(ctx, &form)
}

func (v *View) search(ctx context.Context, form *Form) error {
	v.mu.Lock()
	if v.searchState == StateLoading {
		v.mu.Unlock()
		return ErrBusy
	}
	if form != nil {
		v.form = *form
	}
	v.searchState = StateLoading
	v.showTable = false
	filter := v.form.filter()
	v.mu.Unlock()

	documents, err := v.documents.Search(ctx, filter)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.logger.Warn("could not search documents", "filter", filter, "err", err.Error())
		v.searchState = StateError
		v.push(LevelError, msgSearchFailed, actionClose, v.options.ShortNotice)
		return nil
	}

	v.searchState = StateIdle
	v.rows = documents
	if len(documents) == 0 {
		v.push(LevelInfo, msgNoResults, actionClose, v.options.ShortNotice)
		return nil
	}
	v.showTable = true

	return nil
}

// Clear empties the form and both candidate lists. The result table stays.
// A client lookup still in flight is discarded when it returns.
func (v *View) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.form = Form{}
	v.pool = nil
	v.filtered = nil
	v.clientsSeq++
	if v.clientsState == StateLoading {
		v.clientsState = StateIdle
	}
}

// Awaiting reports whether a search is running.
func (v *View) Awaiting() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.searchState == StateLoading
}

func (v *View) Documents() []models.Document {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]models.Document(nil), v.rows...)
}
