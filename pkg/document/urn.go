package document

import "github.com/google/uuid"

// NewURN returns a fresh random identifier of the form urn:uuid:<uuid>.
func NewURN() string {
	return "urn:uuid:" + uuid.NewString()
}
