package manifest

import (
	"os"

	"github.com/arthur-debert/prehook/pkg/errors"
)

const defaultManifest = `# .pre-commit.yaml generated by prehook
# Each hook has a 'files' glob pattern that matches files to check.
# Globs can use: ? (single char), * (any chars), ** (recursive dirs)
# and one brace group, e.g. '**/*.{go,md}'.
#
# For external tools, prehook manages installation automatically.
# Python hooks use the uv CLI (https://docs.astral.sh/uv/) to create
# per-hook virtual environments; ensure uv is on PATH before running them.
- repo: local
  hooks:
    # Built-in hooks provided by prehook:
    - id: trailing-whitespace
      files: '**/*.{go,py,js,ts,txt,md}'
      enabled: true
    - id: end-of-file-fixer
      files: '**/*.{go,py,txt,md}'
      enabled: true
    - id: check-yaml
      files: '**/*.{yml,yaml}'
      enabled: true
    - id: pretty-format-json
      files: '**/*.{json,jsonc}'
      enabled: false
    - id: check-added-large-files
      files: '**/*'
      enabled: false
      args: ['500000']  # optional max size in bytes

    # Example: install and run a Python tool (managed with uv venv)
    - id: ruff-check
      files: '**/*.py'
      enabled: false
      command: "{install}"
      install:
        language: python
        package: ruff
        entry: ruff
      args: ['check', '--fix']

    # Example: use a Node package from npm
    - id: prettier
      files: '**/*.{js,ts,jsx,tsx,json,css,md}'
      enabled: false
      command: "{install}"
      install:
        language: node
        package: prettier
        entry: prettier
      args: ['--write']

    # Example: install a Rust crate from crates.io or Git
    - id: cargo-deny
      files: '**/Cargo.lock'
      enabled: false
      command: "{install}"
      install:
        language: rust
        package: cargo-deny
        binary: cargo-deny
      args: ['check']

    # Example: install a Go tool (a version is required for go installs)
    - id: staticcheck
      files: '**/*.go'
      enabled: false
      command: "{install}"
      install:
        language: go
        package: honnef.co/go/tools/cmd/staticcheck
        version: '2024.1'
        entry: staticcheck

    # Example: run a locally available command/binary
    - id: gofmt
      files: '**/*.go'
      enabled: false
      command: gofmt
      args: ['-w']
`

// WriteDefault writes a commented example manifest to path.
func WriteDefault(path string) error {
	if err := os.WriteFile(path, []byte(defaultManifest), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write default manifest %s", path)
	}
	return nil
}
