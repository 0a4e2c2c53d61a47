package report

import (
	"encoding/json"
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

func WriteJSON(path string, value interface{}) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal json")
	}
	return os.WriteFile(path, b, 0o644)
}

// EncodeJSON streams value to w, as used by the HTTP API.
func EncodeJSON(w io.Writer, value interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
