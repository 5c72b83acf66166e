package normalizer

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// defaultPhrases is the boilerplate the banking UI glues onto movement rows:
// call-to-action links, column labels, export buttons. Matching is
// case-insensitive and literal.
var defaultPhrases = []string{
	"Ver detalle del movimiento",
	"Pulse para ver detalle",
	"Ver detalle",
	"Ver más",
	"Más información",
	"Detalle del movimiento",
	"Saldo disponible",
	"Exportar movimientos",
	"Descargar justificante",
	"Click for transaction details",
}

// phraseFile is the YAML shape of a phrase override file.
type phraseFile struct {
	Boilerplate []string `yaml:"boilerplate"`
}

// LoadPhrases returns the boilerplate phrase list. When path is empty it
// looks for phrases.yaml in the usual config locations; a missing or
// unreadable file falls back to the built-in defaults.
func LoadPhrases(path string) []string {
	resolved, err := findPhrasesFile(path)
	if err != nil {
		return defaultPhrases
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		log.WithError(err).Warn("Failed to read phrase file, using defaults")
		return defaultPhrases
	}

	var pf phraseFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		log.WithError(err).Warn("Failed to parse phrase file, using defaults")
		return defaultPhrases
	}
	if len(pf.Boilerplate) == 0 {
		return defaultPhrases
	}
	return pf.Boilerplate
}

// findPhrasesFile resolves the phrase file path, checking the standard
// locations when no explicit path is given.
func findPhrasesFile(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", err
		}
		return path, nil
	}

	locations := []string{
		"phrases.yaml",
		filepath.Join("config", "phrases.yaml"),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "bankinter-csv", "phrases.yaml"))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}
