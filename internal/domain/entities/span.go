package entities

// TextSpan is a run of text carrying a fixed set of inline formatting marks.
// Marks combine additively: a span may be bold, italic and code at once.
// Concatenating Text across a span run reconstructs the plain-text rendering.
type TextSpan struct {
	Text        string `json:"text"`
	Bold        bool   `json:"bold,omitempty"`
	Italic      bool   `json:"italic,omitempty"`
	Strike      bool   `json:"strike,omitempty"`
	Code        bool   `json:"code,omitempty"`
	Href        string `json:"href,omitempty"`
	Superscript bool   `json:"superscript,omitempty"`
}

// PlainText concatenates the text of a span run.
func PlainText(spans []TextSpan) string {
	var out string
	for _, s := range spans {
		out += s.Text
	}
	return out
}

// SameMarks reports whether two spans carry an identical mark set.
func (s TextSpan) SameMarks(o TextSpan) bool {
	return s.Bold == o.Bold &&
		s.Italic == o.Italic &&
		s.Strike == o.Strike &&
		s.Code == o.Code &&
		s.Href == o.Href &&
		s.Superscript == o.Superscript
}
