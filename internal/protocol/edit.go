package protocol

// ApplyChanges applies the changes to text in order. Each ranged change is
// interpreted against the text produced by the changes before it.
func ApplyChanges(text string, changes []TextDocumentContentChangeEvent) string {
	for _, ch := range changes {
		if ch.Range == nil {
			text = ch.Text
			continue
		}
		pc := NewPositionConverter(text)
		start, end := pc.RangeToByteOffsets(*ch.Range)
		if end < start {
			start, end = end, start
		}
		text = text[:start] + ch.Text + text[end:]
	}
	return text
}
