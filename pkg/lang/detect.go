package lang

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Detect finds the profile for a file. A registered extension wins;
// otherwise the shebang interpreter and then go-enry's guess from the
// file name and content are looked up among profile names and aliases.
func (r *Registry) Detect(path string, content []byte) (Profile, error) {
	if profile, ok := r.ForExtension(path); ok {
		return profile, nil
	}

	if interpreter := shebangInterpreter(content); interpreter != "" {
		if profile, ok := r.Get(interpreter); ok {
			return profile, nil
		}
	}

	if language, safe := enry.GetLanguageByShebang(content); safe {
		if profile, ok := r.Get(language); ok {
			return profile, nil
		}
	}

	if language := enry.GetLanguage(filepath.Base(path), content); language != "" {
		if profile, ok := r.Get(language); ok {
			return profile, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, path)
}

// Skippable reports files that are never formatted: binary content and
// vendored or generated files.
func Skippable(path string, content []byte) bool {
	return enry.IsBinary(content) || enry.IsVendor(path) || enry.IsGenerated(path, content)
}

// shebangInterpreter returns the interpreter named by a "#!" first line,
// looking through "env".
func shebangInterpreter(content []byte) string {
	if !bytes.HasPrefix(content, []byte("#!")) {
		return ""
	}

	line := content[2:]
	if idx := bytes.IndexAny(line, "\r\n"); idx >= 0 {
		line = line[:idx]
	}

	fields := strings.Fields(string(line))
	if len(fields) == 0 {
		return ""
	}

	interpreter := filepath.Base(fields[0])
	if interpreter == "env" {
		for _, field := range fields[1:] {
			if !strings.HasPrefix(field, "-") {
				return filepath.Base(field)
			}
		}
		return ""
	}
	return interpreter
}
