package view

import (
	"embed"
	"html/template"
	"strconv"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// DialogTemplate is the template name gin renders dialogs with.
const DialogTemplate = "dialog.html"

const (
	DialogDuration = "duration"
	DialogDarkMode = "dark-mode"
	DialogPassword = "password"
)

type Field struct {
	ID    string
	Label string
	Type  string
	Min   string
	Max   string
	Value string
}

type Action struct {
	ID      string
	Label   string
	Primary bool
}

type Dialog struct {
	Name    string
	Title   string
	Text    string
	Fields  []Field
	Actions []Action
}

// ParseTemplates parses the embedded dialog markup.
func ParseTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

func DurationDialog(current model.Duration) Dialog {
	return Dialog{
		Name:  DialogDuration,
		Title: "Edit Lecture Duration",
		Fields: []Field{
			{ID: "modalHours", Label: "Hours", Type: "number", Min: "0", Max: strconv.Itoa(model.MaxDurationHours), Value: strconv.Itoa(current.Hours)},
			{ID: "modalMinutes", Label: "Minutes", Type: "number", Min: "0", Max: strconv.Itoa(model.MaxDurationMinutes), Value: strconv.Itoa(current.Minutes)},
		},
		Actions: []Action{{ID: "cancelDur", Label: "Cancel"}, {ID: "saveDur", Label: "Save", Primary: true}},
	}
}

func DarkModeDialog() Dialog {
	return Dialog{
		Name:    DialogDarkMode,
		Title:   "Toggle Dark Mode",
		Text:    "Switch between light and dark mode.",
		Actions: []Action{{ID: "cancelDM", Label: "Cancel"}, {ID: "applyDM", Label: "Apply", Primary: true}},
	}
}

func PasswordDialog() Dialog {
	return Dialog{
		Name:    DialogPassword,
		Title:   "Change Doctor Password",
		Fields:  []Field{{ID: "newPass", Label: "New Password", Type: "password"}},
		Actions: []Action{{ID: "cancelP", Label: "Cancel"}, {ID: "saveP", Label: "Save", Primary: true}},
	}
}

// DialogByName builds one of the dashboard dialogs; ok is false for an
// unknown name. The duration dialog needs the current duration.
func DialogByName(name string, current model.Duration) (Dialog, bool) {
	switch name {
	case DialogDuration:
		return DurationDialog(current), true
	case DialogDarkMode:
		return DarkModeDialog(), true
	case DialogPassword:
		return PasswordDialog(), true
	}
	return Dialog{}, false
}
