package bundle

import (
	"fmt"
	"slices"
)

// Copy modes for the chat clipboard payload
const (
	CopyPrompt = "prompt"
	CopyFile   = "file"
	CopyBoth   = "both"
)

// CopyModes lists the valid copy modes
var CopyModes = []string{CopyPrompt, CopyFile, CopyBoth}

const userStyle = "<userStyle>Normal</userStyle>"

// Envelope builds the clipboard payload. Unknown modes behave like CopyPrompt.
func Envelope(mode, source, content, prompt string) string {
	document := fmt.Sprintf("<document>\n<source>%s</source>\n<document_content>\n%s\n</document_content>\n</document>", source, content)

	switch mode {
	case CopyFile:
		return document + "\n\n" + userStyle
	case CopyBoth:
		return document + "\n\n" + prompt + "\n\n" + userStyle
	default:
		return prompt + "\n\n" + userStyle
	}
}

// ValidCopyMode reports whether mode is one of CopyModes
func ValidCopyMode(mode string) bool {
	return slices.Contains(CopyModes, mode)
}
