package result

// KeywordType distinguishes plain keywords from loop constructs and their
// iterations.
type KeywordType string

const (
	KeywordTypeKeyword   KeywordType = "KEYWORD"
	KeywordTypeFor       KeywordType = "FOR"
	KeywordTypeWhile     KeywordType = "WHILE"
	KeywordTypeIteration KeywordType = "ITERATION"
)

// MessageLevel is the severity of a logged keyword message.
type MessageLevel string

const (
	LevelInfo  MessageLevel = "INFO"
	LevelWarn  MessageLevel = "WARN"
	LevelError MessageLevel = "ERROR"
	LevelFail  MessageLevel = "FAIL"
)

// Message is a single log entry produced while a keyword executed.
type Message struct {
	Level MessageLevel `json:"level"`
	Text  string       `json:"text"`
}

// Keyword is an executed step within a test. Keywords nest recursively; loop
// keywords contain iteration keywords which in turn contain the loop body.
type Keyword struct {
	Name     string      `json:"name"`
	Type     KeywordType `json:"type,omitempty"`
	Status   Status      `json:"status"`
	Tags     []string    `json:"tags,omitempty"`
	Messages []Message   `json:"messages,omitempty"`
	Keywords []*Keyword  `json:"keywords,omitempty"`

	purged bool
}

// Kind returns the keyword type, defaulting to KeywordTypeKeyword when the
// type was omitted from serialized data.
func (k *Keyword) Kind() KeywordType {
	if k.Type == "" {
		return KeywordTypeKeyword
	}
	return k.Type
}

// dataRemovedNote marks keyword data that was dropped by a removal transform.
const dataRemovedNote = "Keyword data removed using the removekeywords option."

// HasWarnings reports whether this keyword or any of its descendants carries
// a warning-level message. Such keywords are exempt from every removal mode
// except "all".
func (k *Keyword) HasWarnings() bool {
	for _, m := range k.Messages {
		if m.Level == LevelWarn {
			return true
		}
	}
	for _, child := range k.Keywords {
		if child.HasWarnings() {
			return true
		}
	}
	return false
}

// Purge drops the keyword's nested structure and messages, leaving a single
// note in their place. With keepWarnings set, warning-level messages
// survive. Purging an already purged keyword is a no-op, which keeps
// removal transforms idempotent.
func (k *Keyword) Purge(keepWarnings bool) {
	if k.purged {
		return
	}
	var kept []Message
	if keepWarnings {
		for _, m := range k.Messages {
			if m.Level == LevelWarn {
				kept = append(kept, m)
			}
		}
	}
	kept = append(kept, Message{Level: LevelInfo, Text: dataRemovedNote})
	k.Messages = kept
	k.Keywords = nil
	k.purged = true
}

// Flatten hoists every descendant message into this keyword, in traversal
// order, and discards the nested keyword structure. Flattening a keyword
// without children is a no-op.
func (k *Keyword) Flatten() {
	if len(k.Keywords) == 0 {
		return
	}
	for _, child := range k.Keywords {
		child.Flatten()
		k.Messages = append(k.Messages, child.Messages...)
	}
	k.Keywords = nil
}
