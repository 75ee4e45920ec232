// Package scaffold generates the skeleton of a new external hook
// project plus a manifest stanza wiring it up.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/arthur-debert/prehook/pkg/errors"
	"github.com/arthur-debert/prehook/pkg/logging"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Language selects the scaffold flavor.
type Language string

const (
	LanguageGo     Language = "go"
	LanguagePython Language = "python"
	LanguageShell  Language = "shell"
)

// Languages lists the supported scaffold flavors.
func Languages() []Language {
	return []Language{LanguageGo, LanguagePython, LanguageShell}
}

// ParseLanguage validates a user-supplied language name.
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LanguageGo, LanguagePython, LanguageShell:
		return Language(s), nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput,
			"unknown hook language %q (supported: go, python, shell)", s)
	}
}

type templateData struct {
	Name        string
	Description string
}

// Create renders a new hook project under outputDir/name and writes a
// sample manifest stanza next to the generated sources. Returns the
// hook directory.
func Create(name string, lang Language, description, outputDir string) (string, error) {
	logger := logging.GetLogger("scaffold")

	hookDir := filepath.Join(outputDir, name)
	if info, err := os.Stat(hookDir); err == nil {
		if !info.IsDir() {
			return "", errors.Newf(errors.ErrInvalidInput, "%s exists but is not a directory", hookDir)
		}
		logger.Info().Str("dir", hookDir).Msg("hook directory exists, updating")
	} else if err := os.MkdirAll(hookDir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", hookDir)
	}

	data := templateData{Name: name, Description: description}

	var command string
	switch lang {
	case LanguageGo:
		if err := render("go_mod.tmpl", data, filepath.Join(hookDir, "go.mod"), 0644); err != nil {
			return "", err
		}
		if err := render("go_hook.tmpl", data, filepath.Join(hookDir, "main.go"), 0644); err != nil {
			return "", err
		}
		command = filepath.Join(hookDir, name)
	case LanguagePython:
		script := filepath.Join(hookDir, name+".py")
		if err := render("python_hook.tmpl", data, script, 0755); err != nil {
			return "", err
		}
		command = script
	case LanguageShell:
		script := filepath.Join(hookDir, name)
		if err := render("shell_hook.tmpl", data, script, 0755); err != nil {
			return "", err
		}
		command = script
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown hook language %q", lang)
	}

	stanza := fmt.Sprintf(`# Add this to your .pre-commit.yaml to use this hook:
  - id: %s
    files: '**/*'  # Adjust pattern to match files you want to check
    enabled: true
    command: %s
`, name, command)
	stanzaPath := filepath.Join(hookDir, "pre-commit-config.yaml")
	if err := os.WriteFile(stanzaPath, []byte(stanza), 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", stanzaPath)
	}

	logger.Info().Str("dir", hookDir).Str("language", string(lang)).Msg("created hook scaffold")
	return hookDir, nil
}

func render(tmplName string, data templateData, outPath string, mode os.FileMode) error {
	raw, err := templateFS.ReadFile("templates/" + tmplName)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "missing embedded template %s", tmplName)
	}
	tmpl, err := template.New(tmplName).Parse(string(raw))
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "invalid embedded template %s", tmplName)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to render template %s", tmplName)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", outPath)
	}
	return nil
}
