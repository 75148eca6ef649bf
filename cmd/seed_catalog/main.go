// seed_catalog genera una migración SQL que carga materiales y productos desde un CSV
// exportado del sistema anterior (UTF-8 o ISO-8859-1).
//
// Uso: go run ./cmd/seed_catalog [-encoding auto|utf8|latin1] [-delimiter ,] catalogo.csv
//
// Columnas (cabecera obligatoria, sin importar mayúsculas): item_type, sku, name, unit, cost, price.
// item_type acepta MATERIAL o PRODUCT. Escribe NNNNNN_seed_catalog.{up,down}.sql en
// internal/infrastructure/postgres/migrations con el siguiente número de versión libre.
package main

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const seedAuthor = "seed_catalog"

type catalogRow struct {
	itemType string
	sku      string
	name     string
	unit     string
	cost     decimal.Decimal
	price    decimal.Decimal
}

func main() {
	encoding := flag.String("encoding", "auto", "codificación del CSV: auto, utf8 o latin1")
	delimiter := flag.String("delimiter", ",", "separador de columnas")
	flag.Parse()
	if flag.NArg() != 1 || utf8.RuneCountInString(*delimiter) != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed_catalog [-encoding auto|utf8|latin1] [-delimiter ,] catalogo.csv")
		os.Exit(2)
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	r, err := decodeInput(raw, *encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Codificación: %v\n", err)
		os.Exit(1)
	}
	d, _ := utf8.DecodeRuneInString(*delimiter)
	rows, err := parseCatalog(r, d)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parsear CSV: %v\n", err)
		os.Exit(1)
	}

	dir := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations")
	version, err := nextVersion(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer migraciones: %v\n", err)
		os.Exit(1)
	}
	base := filepath.Join(dir, fmt.Sprintf("%06d_seed_catalog", version))
	if err := writeFile(base+".up.sql", func(w io.Writer) error { return writeUp(w, rows) }); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir up: %v\n", err)
		os.Exit(1)
	}
	if err := writeFile(base+".down.sql", func(w io.Writer) error { return writeDown(w, rows) }); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir down: %v\n", err)
		os.Exit(1)
	}

	materials, products := countByType(rows)
	fmt.Printf("Generado %s.{up,down}.sql: %d materiales, %d productos\n", base, materials, products)
}

// decodeInput devuelve un lector UTF-8. En modo auto, un archivo que no es UTF-8 válido
// se trata como ISO-8859-1 (exportaciones de Excel en Windows).
func decodeInput(raw []byte, encoding string) (io.Reader, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	switch strings.ToLower(encoding) {
	case "utf8", "utf-8":
		return bytes.NewReader(raw), nil
	case "latin1", "iso-8859-1":
		return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()), nil
	case "auto":
		if utf8.Valid(raw) {
			return bytes.NewReader(raw), nil
		}
		return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("codificación desconocida %q", encoding)
	}
}

func parseCatalog(r io.Reader, delimiter rune) ([]catalogRow, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.Comma = delimiter
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cabecera: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{"item_type", "sku", "name"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q", col)
		}
	}
	field := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	amount := func(rec []string, col string, line int) (decimal.Decimal, error) {
		s := strings.ReplaceAll(field(rec, col), ",", ".")
		if s == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil || d.IsNegative() {
			return decimal.Zero, fmt.Errorf("línea %d: %s inválido %q", line, col, s)
		}
		return d, nil
	}

	var rows []catalogRow
	seen := map[string]int{}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		row := catalogRow{
			itemType: strings.ToUpper(field(rec, "item_type")),
			sku:      field(rec, "sku"),
			name:     field(rec, "name"),
			unit:     strings.ToUpper(field(rec, "unit")),
		}
		if row.sku == "" && row.name == "" {
			continue
		}
		if row.itemType != "MATERIAL" && row.itemType != "PRODUCT" {
			return nil, fmt.Errorf("línea %d: item_type inválido %q", line, row.itemType)
		}
		if row.sku == "" || row.name == "" {
			return nil, fmt.Errorf("línea %d: sku y name son obligatorios", line)
		}
		if row.unit == "" {
			row.unit = "UND"
		}
		if row.cost, err = amount(rec, "cost", line); err != nil {
			return nil, err
		}
		if row.price, err = amount(rec, "price", line); err != nil {
			return nil, err
		}
		// el último registro de un SKU repetido gana
		key := row.itemType + "|" + row.sku
		if i, ok := seen[key]; ok {
			rows[i] = row
			continue
		}
		seen[key] = len(rows)
		rows = append(rows, row)
	}
	return rows, nil
}

func writeUp(w io.Writer, rows []catalogRow) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("-- Catálogo inicial de materiales y productos\n")
	bw.WriteString("-- Generado por cmd/seed_catalog\n\n")
	for _, r := range rows {
		switch r.itemType {
		case "MATERIAL":
			fmt.Fprintf(bw, "INSERT INTO materials (id, sku, name, unit, cost, created_by)\n")
			fmt.Fprintf(bw, "VALUES ('%s', '%s', '%s', '%s', %s, '%s')\n",
				uuid.NewString(), escapeSQL(r.sku), escapeSQL(r.name), escapeSQL(r.unit), r.cost.String(), seedAuthor)
			bw.WriteString("ON CONFLICT (sku) DO UPDATE SET name = EXCLUDED.name, unit = EXCLUDED.unit, cost = EXCLUDED.cost, updated_at = now();\n")
		case "PRODUCT":
			fmt.Fprintf(bw, "INSERT INTO products (id, sku, name, price, cost, created_by)\n")
			fmt.Fprintf(bw, "VALUES ('%s', '%s', '%s', %s, %s, '%s')\n",
				uuid.NewString(), escapeSQL(r.sku), escapeSQL(r.name), r.price.String(), r.cost.String(), seedAuthor)
			bw.WriteString("ON CONFLICT (sku) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price, cost = EXCLUDED.cost, updated_at = now();\n")
		}
	}
	return bw.Flush()
}

// writeDown borra sólo las filas que insertó la semilla.
func writeDown(w io.Writer, rows []catalogRow) error {
	bySKU := map[string][]string{}
	for _, r := range rows {
		bySKU[r.itemType] = append(bySKU[r.itemType], "'"+escapeSQL(r.sku)+"'")
	}
	bw := bufio.NewWriter(w)
	for _, t := range []struct{ itemType, table string }{{"MATERIAL", "materials"}, {"PRODUCT", "products"}} {
		skus := bySKU[t.itemType]
		if len(skus) == 0 {
			continue
		}
		sort.Strings(skus)
		fmt.Fprintf(bw, "DELETE FROM %s WHERE created_by = '%s' AND sku IN (%s);\n", t.table, seedAuthor, strings.Join(skus, ", "))
	}
	return bw.Flush()
}

var migrationName = regexp.MustCompile(`^(\d+)_.*\.sql$`)

// nextVersion devuelve la versión siguiente a la mayor encontrada en dir.
func nextVersion(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	highest := 0
	for _, e := range entries {
		m := migrationName.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1, nil
}

func countByType(rows []catalogRow) (materials, products int) {
	for _, r := range rows {
		if r.itemType == "MATERIAL" {
			materials++
		} else {
			products++
		}
	}
	return materials, products
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
