package history

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Kind distinguishes text entries from image references.
type Kind int

const (
	TextKind Kind = iota
	ImageKind
)

// Timestamp layouts the daemon has been observed writing. Parsed in order;
// the raw string is kept either way so rewrites never reformat it.
var recordedLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
}

// Entry is one clipboard history record. Identity (ID) is a content hash
// computed at load time; the pin flag is the only field mutated in place.
// Fields the daemon writes that this viewer does not understand are carried
// in extra and written back verbatim.
type Entry struct {
	ID       string
	Value    string
	Recorded string
	FilePath string
	Pinned   bool

	extra map[string]json.RawMessage
}

// Kind reports whether the entry references an image file.
// The daemon writes the literal string "null" for text entries.
func (e *Entry) Kind() Kind {
	if e.FilePath != "" && e.FilePath != "null" {
		return ImageKind
	}
	return TextKind
}

// Label is the searchable/displayable text of the entry: the payload for
// text entries, the daemon-assigned label for image entries.
func (e *Entry) Label() string {
	return e.Value
}

// Time parses the recorded timestamp best-effort. A zero time means the
// daemon wrote a format we don't recognize; ordering still uses the raw
// string so such entries are not misplaced.
func (e *Entry) Time() time.Time {
	for _, layout := range recordedLayouts {
		if t, err := time.Parse(layout, e.Recorded); err == nil {
			return t
		}
	}
	return time.Time{}
}

// computeID derives a stable identity from the entry's content. Two entries
// with the same payload but different timestamps hash differently.
func (e *Entry) computeID() string {
	h := sha256.New()
	h.Write([]byte(e.Value))
	h.Write([]byte{0})
	h.Write([]byte(e.FilePath))
	h.Write([]byte{0})
	h.Write([]byte(e.Recorded))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// UnmarshalJSON decodes the daemon's record shape, tolerating absent fields
// and preserving unknown ones.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	e.extra = make(map[string]json.RawMessage)
	for key, raw := range fields {
		switch key {
		case "value":
			if err := json.Unmarshal(raw, &e.Value); err != nil {
				return err
			}
		case "recorded":
			if err := json.Unmarshal(raw, &e.Recorded); err != nil {
				return err
			}
		case "filePath":
			if err := json.Unmarshal(raw, &e.FilePath); err != nil {
				return err
			}
		case "pinned":
			if err := json.Unmarshal(raw, &e.Pinned); err != nil {
				return err
			}
		default:
			e.extra[key] = raw
		}
	}

	e.ID = e.computeID()
	return nil
}

// MarshalJSON writes the record back in the daemon's shape, including any
// fields we carried through unmodified.
func (e *Entry) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(e.extra)+4)
	for key, raw := range e.extra {
		fields[key] = raw
	}

	var err error
	if fields["value"], err = json.Marshal(e.Value); err != nil {
		return nil, err
	}
	if fields["recorded"], err = json.Marshal(e.Recorded); err != nil {
		return nil, err
	}
	filePath := e.FilePath
	if filePath == "" {
		filePath = "null"
	}
	if fields["filePath"], err = json.Marshal(filePath); err != nil {
		return nil, err
	}
	if fields["pinned"], err = json.Marshal(e.Pinned); err != nil {
		return nil, err
	}

	return json.Marshal(fields)
}
