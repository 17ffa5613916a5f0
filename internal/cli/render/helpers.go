package render

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
	addressStyle       = color.New(color.FgWhite)
	faintStyle         = color.New(color.Faint)
	okStyle            = color.New(color.FgGreen)
	warnStyle          = color.New(color.FgYellow)
	errStyle           = color.New(color.FgRed)
	nameStyle          = color.New(color.FgCyan, color.Bold)
)

var titleCaser = cases.Title(language.English)

// title turns "proxies" into "Proxies"
func title(s string) string {
	return titleCaser.String(s)
}

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return warnStyle.Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Keep only the innermost cause of a wrapped chain
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]

	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return errStyle.Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return okStyle.Sprintf("✅ %s", message)
}

// JSON writes v as indented JSON
func JSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
