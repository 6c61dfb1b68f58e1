package main

import (
	"errors"

	"github.com/ncruces/zenity"
)

// chooseConfigFile asks for a YAML config. A cancelled dialog returns "".
func chooseConfigFile() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Particle Field Config"),
		zenity.FileFilters{{
			Name:     "YAML",
			Patterns: []string{"*.yaml", "*.yml"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}

// showError displays err in a native dialog. Failures to show it are ignored;
// the error was already printed.
func showError(err error) {
	_ = zenity.Error(err.Error(),
		zenity.Title("Particle Field"),
		zenity.ErrorIcon,
	)
}
