package nl

import "fmt"

// Skip reasons reported to the Recorder and carried by MalformedEntityError.
const (
	ReasonMissingDCID       = "missing_dcid"
	ReasonNoSentenceContent = "no_sentence_content"
)

// MalformedEntityError describes an entity that was skipped because it
// lacks an attribute required to build its output.
type MalformedEntityError struct {
	DCID   string
	Reason string
}

func (e *MalformedEntityError) Error() string {
	if e.DCID == "" {
		return fmt.Sprintf("malformed entity: %s", e.Reason)
	}
	return fmt.Sprintf("malformed entity %s: %s", e.DCID, e.Reason)
}
