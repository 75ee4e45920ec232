// Package manifest implements the hook manifest model: repo groups,
// hook definitions and install specs parsed from the YAML config file.
package manifest

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/prehook/pkg/errors"
	"github.com/arthur-debert/prehook/pkg/logging"
)

// InstallPlaceholder is the literal command value that means "resolve
// this hook's executable through the install manager".
const InstallPlaceholder = "{install}"

// DefaultPath is the manifest location relative to the working tree root.
const DefaultPath = ".pre-commit.yaml"

// LocalRepo marks the repo group whose hooks are executable by this engine.
const LocalRepo = "local"

// Language identifies the packaging ecosystem used to provision an
// external hook's binary.
type Language string

const (
	LanguageRust   Language = "rust"
	LanguagePython Language = "python"
	LanguageNode   Language = "node"
	LanguageGo     Language = "go"
)

// Manifest is an ordered collection of repo groups.
type Manifest struct {
	Repos []RepoGroup
}

// RepoGroup holds a source identifier and an ordered list of hooks.
// Only the "local" group's hooks are executable; other groups are
// informational.
type RepoGroup struct {
	Repo  string `yaml:"repo"`
	Hooks []Hook `yaml:"hooks"`
}

// Hook is a single hook definition from the manifest.
type Hook struct {
	ID                     string            `yaml:"id"`
	Name                   string            `yaml:"name,omitempty"`
	Entry                  string            `yaml:"entry,omitempty"`
	Language               string            `yaml:"language,omitempty"`
	Stages                 []string          `yaml:"stages,omitempty"`
	AdditionalDependencies []string          `yaml:"additional_dependencies,omitempty"`
	Enabled                *bool             `yaml:"enabled,omitempty"`
	Args                   []string          `yaml:"args,omitempty"`
	Files                  string            `yaml:"files,omitempty"`
	Command                string            `yaml:"command,omitempty"`
	WorkingDir             string            `yaml:"working-dir,omitempty"`
	Install                *InstallSpec      `yaml:"install,omitempty"`
}

// EnvOverrides returns the environment overrides that apply to this
// hook's external processes. They live on the install spec and cover
// both installer invocations and hook execution.
func (h Hook) EnvOverrides() map[string]string {
	if h.Install == nil {
		return nil
	}
	return h.Install.Env
}

// InstallSpec describes how to provision an external hook binary.
type InstallSpec struct {
	Repo        string            `yaml:"repo,omitempty"`
	Package     string            `yaml:"package,omitempty"`
	Version     string            `yaml:"version,omitempty"`
	Entry       string            `yaml:"entry,omitempty"`
	Binary      string            `yaml:"binary,omitempty"`
	Language    Language          `yaml:"language,omitempty"`
	Env         map[string]string `yaml:"env,omitempty"`
	InstallArgs []string          `yaml:"install_args,omitempty"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read manifest %s", path)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	logger := logging.GetLogger("manifest")
	logger.Debug().
		Str("path", path).
		Int("groups", len(m.Repos)).
		Msg("Loaded manifest")
	return m, nil
}

// Parse decodes manifest bytes. Two shapes are accepted: the canonical
// top-level list of repo groups, and a bare `hooks:` mapping which is
// treated as a single implicit local group.
func Parse(data []byte) (*Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "malformed manifest")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New(errors.ErrConfigParse, "empty manifest")
	}

	root := doc.Content[0]
	m := &Manifest{}

	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&m.Repos); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "malformed repo group list")
		}
	case yaml.MappingNode:
		var compat struct {
			Repos []RepoGroup `yaml:"repos"`
			Hooks []Hook      `yaml:"hooks"`
		}
		if err := root.Decode(&compat); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "malformed manifest")
		}
		m.Repos = compat.Repos
		if len(compat.Hooks) > 0 {
			m.Repos = append(m.Repos, RepoGroup{Repo: LocalRepo, Hooks: compat.Hooks})
		}
	default:
		return nil, errors.New(errors.ErrConfigParse, "manifest must be a list of repo groups or a hooks mapping")
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manifest) validate() error {
	for gi, group := range m.Repos {
		if group.Repo == "" {
			return errors.Newf(errors.ErrConfigInvalid, "repo group %d is missing 'repo'", gi)
		}
		for hi, h := range group.Hooks {
			if h.ID == "" {
				return errors.Newf(errors.ErrConfigInvalid, "hook %d in repo %q is missing 'id'", hi, group.Repo)
			}
			if h.Install != nil {
				switch h.Install.EffectiveLanguage() {
				case LanguageRust, LanguagePython, LanguageNode, LanguageGo:
				default:
					return errors.Newf(errors.ErrConfigInvalid,
						"hook %q: unknown install language %q", h.ID, h.Install.Language)
				}
			}
		}
	}
	return nil
}

// LocalHooks returns the hooks of all "local" repo groups, preserving
// manifest order. Only these are executable by the engine.
func (m *Manifest) LocalHooks() []Hook {
	var hooks []Hook
	for _, group := range m.Repos {
		if group.Repo == LocalRepo {
			hooks = append(hooks, group.Hooks...)
		}
	}
	return hooks
}

// HookIDs returns the sorted set of local hook ids, mostly for listings.
func (m *Manifest) HookIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, h := range m.LocalHooks() {
		if !seen[h.ID] {
			seen[h.ID] = true
			ids = append(ids, h.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// IsEnabled reports whether the hook should run. Defaults to true.
func (h Hook) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// CommandIsInstall reports whether the hook's command is the install
// placeholder token.
func (h Hook) CommandIsInstall() bool {
	return h.Command == InstallPlaceholder
}

// DisplayName returns the human name, falling back to the id.
func (h Hook) DisplayName() string {
	if h.Name != "" {
		return h.Name
	}
	return h.ID
}

// EffectiveLanguage returns the spec's ecosystem, defaulting to rust.
func (s *InstallSpec) EffectiveLanguage() Language {
	if s.Language == "" {
		return LanguageRust
	}
	return s.Language
}

// EntryName resolves the executable entry name, falling back to the
// binary name and finally the hook id.
func (s *InstallSpec) EntryName(hookID string) string {
	if s.Entry != "" {
		return s.Entry
	}
	if s.Binary != "" {
		return s.Binary
	}
	return hookID
}

// BinaryName resolves the binary name, falling back to the entry name
// and finally the hook id.
func (s *InstallSpec) BinaryName(hookID string) string {
	if s.Binary != "" {
		return s.Binary
	}
	if s.Entry != "" {
		return s.Entry
	}
	return hookID
}

// Source returns the package or repo reference used in lock records.
func (s *InstallSpec) Source() string {
	if s.Package != "" {
		return s.Package
	}
	return s.Repo
}

// Summary renders a one-line description for listings.
func (s *InstallSpec) Summary() string {
	target := s.Package
	if target == "" {
		target = s.Repo
	}
	if target == "" {
		target = "unknown"
	}
	entry := s.Entry
	if entry == "" {
		entry = "default"
	}
	return fmt.Sprintf("lang=%s target=%s entry=%s", s.EffectiveLanguage(), target, entry)
}
