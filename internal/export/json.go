package export

import (
	"encoding/json"
	"io"

	"github.com/flipdeck/flipdeck/internal/core"
	"github.com/flipdeck/flipdeck/internal/journal"
)

// WriteJSON writes the full journal document, pretty-printed. The
// output is the same shape the state store persists, so an export can
// be imported back verbatim.
func WriteJSON(w io.Writer, book *journal.Book) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(book); err != nil {
		return core.WrapError(core.ErrExportFailed, err)
	}
	return nil
}

// ReadJSON parses a journal document previously written by WriteJSON.
func ReadJSON(r io.Reader) (*journal.Book, error) {
	var book journal.Book
	if err := json.NewDecoder(r).Decode(&book); err != nil {
		return nil, core.WrapError(core.ErrImportFailed, err)
	}
	return &book, nil
}
