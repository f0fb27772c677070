package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandevgo/redwan/configs"
	"github.com/sandevgo/redwan/pkg/env"
)

// SaveEnvStep writes the collected configuration to the .env file
type SaveEnvStep struct {
	err   error
	saved bool
}

func NewSaveEnvStep() Step {
	return &SaveEnvStep{}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return nil
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}
	if s.err != nil {
		return s, nil
	}

	if err := saveEnv(state); err != nil {
		s.err = err
		return s, nil
	}

	s.saved = true
	return nil, nil
}

func saveEnv(state *InstallState) error {
	if err := os.MkdirAll(state.RuntimePath, 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := filepath.Join(state.RuntimePath, ".env")
	if _, err := os.Stat(envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", envPath)
	}

	content, err := env.MarshalEnv(&state.App, state.Generator, &state.Telegram)
	if err != nil {
		return err
	}

	return os.WriteFile(envPath, []byte(content), 0600)
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}

// InitializeDataStep copies the bundled intents and dictionary into the
// runtime data directory, where they can be edited. Existing files are kept.
type InitializeDataStep struct {
	err  error
	done bool
}

func NewInitializeDataStep() Step {
	return &InitializeDataStep{}
}

func (s *InitializeDataStep) Init() tea.Cmd {
	return nil
}

func (s *InitializeDataStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.done {
		return nil, nil
	}
	if s.err != nil {
		return s, nil
	}

	if _, err := CopyDefaults(configs.FS, filepath.Join(state.RuntimePath, "data")); err != nil {
		s.err = err
		return s, nil
	}

	s.done = true
	return nil, nil
}

// CopyDefaults writes every file of src into dir, skipping files that
// already exist. It returns the paths written.
func CopyDefaults(src fs.FS, dir string) ([]string, error) {
	var written []string
	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) == ".go" {
			return nil
		}

		dst := filepath.Join(dir, filepath.FromSlash(p))
		if _, err := os.Stat(dst); err == nil {
			return nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		data, err := fs.ReadFile(src, p)
		if err != nil {
			return fmt.Errorf("failed to read embedded %s: %w", p, err)
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", dst, err)
		}
		written = append(written, dst)
		return nil
	})
	return written, err
}

func (s *InitializeDataStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.done {
		return "Data files initialized successfully!\n"
	}
	return "Copying intents and dictionary...\n" + hintStyle.Render(filepath.Join(state.RuntimePath, "data")) + "\n"
}
