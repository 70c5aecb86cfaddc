package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"nuam/internal/models"
	"nuam/internal/testutil"
)

func readExport(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	records, err := csv.NewReader(buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	return records
}

func TestExportInstrumentos(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	vence := testutil.Date(2030, 12, 31)
	bono := testutil.CreateTestInstrumento(t, db, "BONO1", models.TipoBono, models.MercadoPeru)
	if err := db.Model(bono).Update("fecha_vencimiento", vence).Error; err != nil {
		t.Fatalf("set vencimiento: %v", err)
	}
	testutil.CreateTestInstrumento(t, db, "ACC1", models.TipoAccion, models.MercadoChile)

	var buf bytes.Buffer
	testutil.AssertNoError(t, NewExportService(db).ExportInstrumentos(&buf))
	records := readExport(t, &buf)

	if len(records) != 3 {
		t.Fatalf("expected header and 2 rows, got %d records", len(records))
	}
	if !sameStrings(records[0], InstrumentoExportHeaders) {
		t.Errorf("unexpected header %v", records[0])
	}
	want := []string{"ACC1", "Instrumento ACC1", "Acción", "Chile", "Activo", "", ""}
	if !sameStrings(records[1], want) {
		t.Errorf("expected %v, got %v", want, records[1])
	}
	if records[2][0] != "BONO1" || records[2][3] != "Perú" || records[2][6] != "2030-12-31" {
		t.Errorf("unexpected row %v", records[2])
	}
}

func TestExportCalificaciones(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	inst := testutil.CreateTestInstrumento(t, db, "ACC1", models.TipoAccion, models.MercadoChile)
	old := testutil.CreateTestCalificacion(t, db, inst.ID, models.CalificacionInactiva, testutil.Date(2023, 1, 1), "")
	recent := testutil.CreateTestCalificacion(t, db, inst.ID, models.CalificacionActiva, testutil.Date(2024, 1, 1), "99.5")

	var buf bytes.Buffer
	testutil.AssertNoError(t, NewExportService(db).ExportCalificaciones(&buf))
	records := readExport(t, &buf)

	if len(records) != 3 {
		t.Fatalf("expected header and 2 rows, got %d records", len(records))
	}
	if !sameStrings(records[0], CalificacionExportHeaders) {
		t.Errorf("unexpected header %v", records[0])
	}
	want := []string{recent.Codigo(), "ACC1", "Riesgo", "Activa", "2024-01-01", "99.50"}
	if !sameStrings(records[1], want) {
		t.Errorf("expected %v, got %v", want, records[1])
	}
	want = []string{old.Codigo(), "ACC1", "Riesgo", "Inactiva", "2023-01-01", ""}
	if !sameStrings(records[2], want) {
		t.Errorf("expected %v, got %v", want, records[2])
	}
}

func TestExport_EmptyTables(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewExportService(db)

	var buf bytes.Buffer
	testutil.AssertNoError(t, svc.ExportCalificaciones(&buf))
	if records := readExport(t, &buf); len(records) != 1 {
		t.Errorf("expected header only, got %d records", len(records))
	}
}
