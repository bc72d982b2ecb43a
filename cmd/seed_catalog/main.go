// seed_catalog genera un script SQL para poblar proveedores y productos de una empresa
// a partir de un CSV exportado del sistema anterior (UTF-8 o ISO-8859-1).
//
// Uso: go run ./cmd/seed_catalog <company_id> [ruta/catalogo.csv]
// Columnas esperadas (con encabezado): tipo,nombre,sku,precio,iva,proveedor,codigo_barras
// tipo es "proveedor" o "producto". Escribe: migrations/0002_seed_catalog.sql
package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/ventas-pos-api/pkg/money"
)

type supplierRow struct {
	name string
}

type productRow struct {
	name, sku, supplier, barcode string
	price, taxRate               decimal.Decimal
}

type catalog struct {
	suppliers []supplierRow
	products  []productRow
	skipped   int
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: seed_catalog <company_id> [catalogo.csv]")
		os.Exit(2)
	}
	companyID, err := uuid.Parse(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "company_id inválido: %v\n", err)
		os.Exit(2)
	}
	csvPath := "catalogo.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	cat, err := parseCatalog(decodeInput(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "migrations", "0002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, companyID, cat); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d proveedores, %d productos (%d filas omitidas)\n",
		outPath, len(cat.suppliers), len(cat.products), cat.skipped)
}

// decodeInput convierte a UTF-8 los exportes en Latin-1.
func decodeInput(raw []byte) io.Reader {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return bytes.NewReader(raw)
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder())
}

func parseCatalog(r io.Reader) (*catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{"tipo", "nombre"} {
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

	cat := &catalog{}
	seen := map[string]bool{}
	addSupplier := func(name string) {
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			return
		}
		seen[key] = true
		cat.suppliers = append(cat.suppliers, supplierRow{name: name})
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		name := field(rec, "nombre")
		switch strings.ToLower(field(rec, "tipo")) {
		case "proveedor":
			addSupplier(name)
		case "producto":
			p := productRow{
				name:     name,
				sku:      field(rec, "sku"),
				supplier: field(rec, "proveedor"),
				barcode:  field(rec, "codigo_barras"),
				price:    parseAmount(field(rec, "precio")),
				taxRate:  parseAmount(field(rec, "iva")),
			}
			if p.name == "" || p.sku == "" || !validTaxRate(p.taxRate) || p.price.IsNegative() {
				cat.skipped++
				continue
			}
			addSupplier(p.supplier)
			cat.products = append(cat.products, p)
		default:
			cat.skipped++
		}
	}
	sort.SliceStable(cat.suppliers, func(i, j int) bool { return cat.suppliers[i].name < cat.suppliers[j].name })
	return cat, nil
}

// parseAmount acepta "12500", "12.500,50" o "12500.50"; lo ilegible queda en 0.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else if n := strings.Count(s, "."); n > 1 || (n == 1 && len(s)-strings.Index(s, ".") == 4) {
		// "12.500" es separador de miles, no decimales
		s = strings.ReplaceAll(s, ".", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !money.Plausible(d) {
		return decimal.Zero
	}
	return d
}

func validTaxRate(r decimal.Decimal) bool {
	return r.Equal(decimal.Zero) || r.Equal(decimal.NewFromInt(5)) || r.Equal(decimal.NewFromInt(19))
}

func writeSQL(w io.Writer, companyID uuid.UUID, cat *catalog) error {
	var b strings.Builder
	b.WriteString("-- Catálogo inicial generado por cmd/seed_catalog\n\n")

	if len(cat.suppliers) > 0 {
		b.WriteString("-- 1. Proveedores\n")
		b.WriteString("INSERT INTO suppliers (id, company_id, name) VALUES\n")
		for i, s := range cat.suppliers {
			sep := ","
			if i == len(cat.suppliers)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "  ('%s', '%s', '%s')%s\n", uuid.New(), companyID, escapeSQL(s.name), sep)
		}
		b.WriteString("ON CONFLICT DO NOTHING;\n\n")
	}

	b.WriteString("-- 2. Productos (proveedor por nombre)\n")
	for _, p := range cat.products {
		supplier := "NULL"
		if p.supplier != "" {
			supplier = fmt.Sprintf("(SELECT id FROM suppliers WHERE company_id = '%s' AND lower(trim(name)) = lower('%s'))",
				companyID, escapeSQL(p.supplier))
		}
		fmt.Fprintf(&b, "INSERT INTO products (id, company_id, supplier_id, sku, name, price, tax_rate, barcode)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', %s, '%s', '%s', %s, %s, '%s')\n",
			uuid.New(), companyID, supplier, escapeSQL(p.sku), escapeSQL(p.name),
			p.price.StringFixed(2), p.taxRate.StringFixed(2), escapeSQL(p.barcode))
		b.WriteString("ON CONFLICT (company_id, sku) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price, tax_rate = EXCLUDED.tax_rate;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
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
