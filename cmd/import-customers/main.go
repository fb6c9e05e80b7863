// import-customers importa clientes desde un CSV exportado del sistema
// anterior (separado por ';', codificado en ISO-8859-1).
//
// Columnas esperadas: razon_social;cnpj;ref_externa;contacto;telefono;email
// Las filas sin razón social o CNPJ se saltan; los CNPJ ya registrados se
// reportan y se continúa.
//
// Uso: go run ./cmd/import-customers clientes.csv
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
	"github.com/trainmaster-app/trainmaster-api/internal/infrastructure/postgres"
	"github.com/trainmaster-app/trainmaster-api/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: import-customers <archivo.csv>")
		os.Exit(1)
	}
	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	customerRepo := postgres.NewCustomerRepository(pool)

	// El sistema anterior exporta en ISO-8859-1; transcodificar a UTF-8.
	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	var line, imported, skipped int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "línea %d: %v\n", line+1, err)
			os.Exit(1)
		}
		line++
		if line == 1 && strings.EqualFold(field(record, 0), "razon_social") {
			continue // cabecera
		}

		name := field(record, 0)
		taxID := field(record, 1)
		if name == "" || taxID == "" {
			fmt.Fprintf(os.Stderr, "línea %d: sin razón social o CNPJ, se salta\n", line)
			skipped++
			continue
		}

		if existing, err := customerRepo.GetByTaxID(ctx, taxID); err != nil {
			fmt.Fprintf(os.Stderr, "línea %d: consultar CNPJ: %v\n", line, err)
			os.Exit(1)
		} else if existing != nil {
			fmt.Fprintf(os.Stderr, "línea %d: CNPJ %s ya registrado, se salta\n", line, taxID)
			skipped++
			continue
		}

		var contacts []entity.Contact
		if contactName := field(record, 3); contactName != "" {
			contacts = append(contacts, entity.Contact{
				Name:    contactName,
				Phone:   field(record, 4),
				Email:   field(record, 5),
				KeyUser: true, // el contacto del sistema anterior era el solicitante
			})
		}

		now := time.Now()
		customer := &entity.Customer{
			ID:          uuid.New().String(),
			Name:        name,
			TaxID:       taxID,
			ExternalRef: field(record, 2),
			Contacts:    contacts,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := customerRepo.Create(ctx, customer); err != nil {
			fmt.Fprintf(os.Stderr, "línea %d: crear cliente: %v\n", line, err)
			os.Exit(1)
		}
		imported++
	}

	fmt.Printf("importados %d clientes (%d saltados)\n", imported, skipped)
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
