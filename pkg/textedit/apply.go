package textedit

import "bytes"

// Apply returns content with changes applied. The input is not modified.
func Apply(content []byte, changes []Change) ([]byte, error) {
	if len(changes) == 0 {
		return bytes.Clone(content), nil
	}

	sorted, err := Prepare(changes, len(content))
	if err != nil {
		return nil, err
	}

	grow := len(content)
	for _, c := range sorted {
		grow += len(c.NewText) - c.Len()
	}

	var buf bytes.Buffer
	buf.Grow(max(grow, 0))

	last := 0
	for _, c := range sorted {
		buf.Write(content[last:c.Start])
		buf.WriteString(c.NewText)
		last = c.End
	}
	buf.Write(content[last:])

	return buf.Bytes(), nil
}

// ApplyString is Apply for string content.
func ApplyString(content string, changes []Change) (string, error) {
	out, err := Apply([]byte(content), changes)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
