package consult

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/meghashyamc/docregistry/models"
)

// minFragmentLength is the fragment length that triggers a backend lookup.
// Longer fragments only narrow the pool already loaded.
const minFragmentLength = 3

// OnClientNameChange reacts to the client name input. Only a fragment of
// exactly minFragmentLength characters reaches the backend; a response is
// applied only if no newer lookup was issued meanwhile.
func (v *View) OnClientNameChange(ctx context.Context, fragment string) {
	v.mu.Lock()
	v.form.ClientName = fragment
	length := utf8.RuneCountInString(fragment)

	if length < minFragmentLength {
		v.filtered = nil
		v.mu.Unlock()
		return
	}
	if length > minFragmentLength {
		v.filtered = filterClients(v.pool, fragment)
		v.mu.Unlock()
		return
	}

	v.clientsSeq++
	seq := v.clientsSeq
	v.clientsState = StateLoading
	v.filtered = filterClients(v.pool, fragment)
	v.mu.Unlock()

	clients, err := v.clients.SearchByName(ctx, fragment)

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq != v.clientsSeq {
		v.logger.Debug("discarding stale client suggestions", "fragment", fragment, "seq", seq, "latest", v.clientsSeq)
		return
	}
	if err != nil {
		v.logger.Warn("could not search clients", "fragment", fragment, "err", err.Error())
		v.clientsState = StateError
		v.push(LevelError, msgClientsFailed, actionClose, v.options.ShortNotice)
		return
	}

	v.clientsState = StateIdle
	v.pool = clients
	v.refilter()
}

// Refilter sets the client name and narrows the loaded pool to it without
// calling the backend.
func (v *View) Refilter(fragment string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form.ClientName = fragment
	v.refilter()
}

func (v *View) refilter() {
	if utf8.RuneCountInString(v.form.ClientName) < minFragmentLength {
		v.filtered = nil
		return
	}
	v.filtered = filterClients(v.pool, v.form.ClientName)
}

// OnClientSelected binds the id of the filtered candidate named displayName
// to the form, or clears it when no candidate has that exact name.
func (v *View) OnClientSelected(displayName string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, client := range v.filtered {
		if client.Name == displayName {
			if client.ID != 0 {
				v.form.ClientID = client.ID
			}
			return
		}
	}
	v.form.ClientID = 0
}

// Candidates returns the filtered candidate list.
func (v *View) Candidates() []models.Client {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]models.Client(nil), v.filtered...)
}

func filterClients(clients []models.Client, fragment string) []models.Client {
	needle := strings.ToLower(fragment)
	filtered := []models.Client{}
	for _, client := range clients {
		if strings.Contains(strings.ToLower(client.Name), needle) {
			filtered = append(filtered, client)
		}
	}
	return filtered
}
