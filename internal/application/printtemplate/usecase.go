package printtemplate

import (
	"context"
	"encoding/json"
	"regexp"
	"sort"
	"sync"

	"github.com/IhsanMhd-mr/back-ims/internal/domain"
)

var validName = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Store persiste el conjunto completo de plantillas como un único documento.
type Store interface {
	Load(ctx context.Context) (map[string]json.RawMessage, error)
	Save(ctx context.Context, templates map[string]json.RawMessage) error
}

// UseCase plantillas de impresión (documentos JSON opacos indexados por nombre).
// Las escrituras se serializan: cada una lee, modifica y reescribe el documento completo.
type UseCase struct {
	mu    sync.Mutex
	store Store
}

// NewUseCase construye el caso de uso.
func NewUseCase(store Store) *UseCase {
	return &UseCase{store: store}
}

// List devuelve los nombres ordenados.
func (uc *UseCase) List(ctx context.Context) ([]string, error) {
	all, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(all))
	for n := range all {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Get devuelve el documento o domain.ErrNotFound.
func (uc *UseCase) Get(ctx context.Context, name string) (json.RawMessage, error) {
	if !validName.MatchString(name) {
		return nil, domain.ErrInvalidInput
	}
	all, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	doc, ok := all[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

// Save crea o reemplaza la plantilla. body debe ser un objeto JSON válido.
// created indica si no existía.
func (uc *UseCase) Save(ctx context.Context, name string, body []byte) (created bool, err error) {
	if !validName.MatchString(name) {
		return false, domain.ErrInvalidInput
	}
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return false, domain.ErrInvalidInput
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	all, err := uc.store.Load(ctx)
	if err != nil {
		return false, err
	}
	_, exists := all[name]
	all[name] = json.RawMessage(append([]byte(nil), body...))
	if err := uc.store.Save(ctx, all); err != nil {
		return false, err
	}
	return !exists, nil
}

// Delete elimina la plantilla o devuelve domain.ErrNotFound.
func (uc *UseCase) Delete(ctx context.Context, name string) error {
	if !validName.MatchString(name) {
		return domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	all, err := uc.store.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := all[name]; !ok {
		return domain.ErrNotFound
	}
	delete(all, name)
	return uc.store.Save(ctx, all)
}
