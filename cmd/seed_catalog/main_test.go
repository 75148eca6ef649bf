package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInput_Latin1Auto(t *testing.T) {
	// "Azúcar" en ISO-8859-1: ú = 0xFA
	raw := []byte("item_type,sku,name\nMATERIAL,AZ-1,Az\xfacar\n")
	r, err := decodeInput(raw, "auto")
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Azúcar")

	_, err = decodeInput(raw, "ebcdic")
	assert.Error(t, err)
}

func TestParseCatalog(t *testing.T) {
	csv := "Item_Type;SKU;Name;Unit;Cost;Price\n" +
		"material;HAR-01;Harina;kg;2,5;\n" +
		"PRODUCT;PAN-01;Pan d'agua;;1.2;3\n" +
		";;;;;\n" +
		"MATERIAL;HAR-01;Harina fina;KG;2.75;\n"

	rows, err := parseCatalog(strings.NewReader(csv), ';')
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "MATERIAL", rows[0].itemType)
	assert.Equal(t, "Harina fina", rows[0].name, "el último SKU repetido gana")
	assert.Equal(t, "2.75", rows[0].cost.String())
	assert.Equal(t, "UND", rows[1].unit)
	assert.Equal(t, "3", rows[1].price.String())
}

func TestParseCatalog_Errores(t *testing.T) {
	_, err := parseCatalog(strings.NewReader("sku,name\nA,B\n"), ',')
	assert.ErrorContains(t, err, "item_type")

	_, err = parseCatalog(strings.NewReader("item_type,sku,name\nSERVICE,A,B\n"), ',')
	assert.ErrorContains(t, err, "línea 2")

	_, err = parseCatalog(strings.NewReader("item_type,sku,name,cost\nMATERIAL,A,B,-1\n"), ',')
	assert.ErrorContains(t, err, "cost")
}

func TestWriteUpYDown(t *testing.T) {
	rows, err := parseCatalog(strings.NewReader("item_type,sku,name\nPRODUCT,P'1,Pan\n"), ',')
	require.NoError(t, err)

	var up, down strings.Builder
	require.NoError(t, writeUp(&up, rows))
	require.NoError(t, writeDown(&down, rows))

	assert.Contains(t, up.String(), "INSERT INTO products")
	assert.Contains(t, up.String(), "'P''1'")
	assert.Contains(t, up.String(), "ON CONFLICT (sku)")
	assert.Equal(t, "DELETE FROM products WHERE created_by = 'seed_catalog' AND sku IN ('P''1');\n", down.String())
}

func TestNextVersion(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"000001_a.up.sql", "000007_b.down.sql", "embed.go", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}
	v, err := nextVersion(dir)
	require.NoError(t, err)
	assert.Equal(t, 8, v)
}
