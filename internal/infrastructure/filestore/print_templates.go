// Package filestore persiste documentos JSON en disco.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/IhsanMhd-mr/back-ims/internal/application/printtemplate"
)

var _ printtemplate.Store = (*PrintTemplateStore)(nil)

// PrintTemplateStore guarda todas las plantillas en un único archivo JSON.
// La escritura va a un temporal en el mismo directorio y luego se renombra.
type PrintTemplateStore struct {
	path string
}

// NewPrintTemplateStore construye el store sobre path (se crea al primer Save).
func NewPrintTemplateStore(path string) *PrintTemplateStore {
	return &PrintTemplateStore{path: path}
}

// Load lee el archivo. Un archivo inexistente equivale a un conjunto vacío.
func (s *PrintTemplateStore) Load(_ context.Context) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("filestore: leer %s: %w", s.path, err)
	}
	out := map[string]json.RawMessage{}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("filestore: decodificar %s: %w", s.path, err)
	}
	return out, nil
}

// Save reescribe el archivo completo de forma atómica.
func (s *PrintTemplateStore) Save(_ context.Context, templates map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(templates, "", "  ")
	if err != nil {
		return fmt.Errorf("filestore: codificar: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("filestore: crear directorio: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".print_templates-*.json")
	if err != nil {
		return fmt.Errorf("filestore: temporal: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("filestore: escribir: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("filestore: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filestore: cerrar: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("filestore: renombrar: %w", err)
	}
	return nil
}
