package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IhsanMhd-mr/back-ims/internal/application/printtemplate"
	"github.com/IhsanMhd-mr/back-ims/internal/domain"
	"github.com/IhsanMhd-mr/back-ims/internal/infrastructure/filestore"
)

func TestPrintTemplateStore_CicloCompleto(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "print_templates.json")
	uc := printtemplate.NewUseCase(filestore.NewPrintTemplateStore(path))

	names, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names, "sin archivo no hay plantillas")

	created, err := uc.Save(ctx, "invoice", []byte(`{"width":80,"lines":["a","b"]}`))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.Save(ctx, "invoice", []byte(`{"width":58}`))
	require.NoError(t, err)
	assert.False(t, created)

	_, err = uc.Save(ctx, "delivery_note", []byte(`{"copies":2}`))
	require.NoError(t, err)

	doc, err := uc.Get(ctx, "invoice")
	require.NoError(t, err)
	assert.JSONEq(t, `{"width":58}`, string(doc))

	names, err = uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"delivery_note", "invoice"}, names)

	require.NoError(t, uc.Delete(ctx, "invoice"))
	assert.ErrorIs(t, uc.Delete(ctx, "invoice"), domain.ErrNotFound)
	_, err = uc.Get(ctx, "invoice")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// No quedan temporales junto al archivo.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPrintTemplates_Validacion(t *testing.T) {
	ctx := context.Background()
	uc := printtemplate.NewUseCase(filestore.NewPrintTemplateStore(filepath.Join(t.TempDir(), "t.json")))

	_, err := uc.Save(ctx, "../etc/passwd", []byte(`{}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Save(ctx, "ok", []byte(`not json`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Save(ctx, "ok", []byte(`[1,2]`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPrintTemplateStore_ArchivoCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err := filestore.NewPrintTemplateStore(path).Load(context.Background())
	assert.Error(t, err)
}
