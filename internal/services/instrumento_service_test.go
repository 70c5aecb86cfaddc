package services

import (
	"testing"

	"nuam/internal/models"
	"nuam/internal/testutil"
)

func instrumentoInput(codigo string, tipo models.TipoInstrumento, mercado models.Mercado) InstrumentoInput {
	return InstrumentoInput{
		Codigo:  codigo,
		Nombre:  "Instrumento " + codigo,
		Tipo:    tipo,
		Mercado: mercado,
	}
}

func codigos(instrumentos []models.Instrumento) []string {
	out := make([]string, len(instrumentos))
	for i, inst := range instrumentos {
		out[i] = inst.Codigo
	}
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCreateInstrumento(t *testing.T) {
	t.Run("defaults_estado", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInstrumentoService(db)

		emision := testutil.Date(2024, 1, 15)
		in := instrumentoInput(" BONO-2030 ", models.TipoBono, models.MercadoChile)
		in.FechaEmision = &emision

		inst, err := svc.CreateInstrumento(in)
		testutil.AssertNoError(t, err)

		if inst.Codigo != "BONO-2030" {
			t.Errorf("expected trimmed codigo, got %q", inst.Codigo)
		}
		if inst.Estado != models.InstrumentoActivo {
			t.Errorf("expected ACTIVO, got %s", inst.Estado)
		}

		got, err := svc.GetInstrumentoByID(inst.ID)
		testutil.AssertNoError(t, err)
		if got.FechaEmision == nil || !got.FechaEmision.Equal(emision) {
			t.Errorf("expected fecha emision %v, got %v", emision, got.FechaEmision)
		}
		if got.FechaVencimiento != nil {
			t.Errorf("expected no fecha vencimiento, got %v", got.FechaVencimiento)
		}
	})

	t.Run("duplicate_codigo", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInstrumentoService(db)

		_, err := svc.CreateInstrumento(instrumentoInput("ACC1", models.TipoAccion, models.MercadoChile))
		testutil.AssertNoError(t, err)

		_, err = svc.CreateInstrumento(instrumentoInput("ACC1", models.TipoBono, models.MercadoPeru))
		testutil.AssertAppError(t, err, "DUPLICATE_CODIGO")
	})

	t.Run("invalid_input", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInstrumentoService(db)

		for name, in := range map[string]InstrumentoInput{
			"blank codigo":   instrumentoInput(" ", models.TipoAccion, models.MercadoChile),
			"unknown tipo":   instrumentoInput("X", "FUTURO", models.MercadoChile),
			"unknown market": instrumentoInput("X", models.TipoAccion, "AR"),
		} {
			if _, err := svc.CreateInstrumento(in); err == nil {
				t.Errorf("%s: expected error", name)
			} else {
				testutil.AssertAppError(t, err, "INVALID_INPUT")
			}
		}
		if n := testutil.Count(t, db, &models.Instrumento{}); n != 0 {
			t.Errorf("expected no instruments, found %d", n)
		}
	})
}

func TestGetInstrumentoByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewInstrumentoService(db)

	inst := testutil.CreateTestInstrumento(t, db, "ACC1", models.TipoAccion, models.MercadoChile)
	older := testutil.CreateTestCalificacion(t, db, inst.ID, models.CalificacionActiva, testutil.Date(2024, 1, 1), "10")
	newer := testutil.CreateTestCalificacion(t, db, inst.ID, models.CalificacionActiva, testutil.Date(2024, 6, 1), "20")

	got, err := svc.GetInstrumentoByID(inst.ID)
	testutil.AssertNoError(t, err)
	if len(got.Calificaciones) != 2 {
		t.Fatalf("expected 2 ratings, got %d", len(got.Calificaciones))
	}
	if got.Calificaciones[0].ID != newer.ID || got.Calificaciones[1].ID != older.ID {
		t.Error("expected ratings newest first")
	}

	_, err = svc.GetInstrumentoByID(9999)
	testutil.AssertAppError(t, err, "INSTRUMENTO_NOT_FOUND")
}

func TestListInstrumentos(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewInstrumentoService(db)

	testutil.CreateTestInstrumento(t, db, "BONO-CL", models.TipoBono, models.MercadoChile)
	testutil.CreateTestInstrumento(t, db, "ACC-CL", models.TipoAccion, models.MercadoChile)
	testutil.CreateTestInstrumento(t, db, "BONO-PE", models.TipoBono, models.MercadoPeru)
	inactive := testutil.CreateTestInstrumento(t, db, "ACC_100%", models.TipoAccion, models.MercadoColombia)
	if err := db.Model(inactive).Update("estado", models.InstrumentoInactivo).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if err := db.Model(&models.Instrumento{}).Where("codigo = ?", "ACC-CL").Update("nombre", "Banco de Crédito").Error; err != nil {
		t.Fatalf("rename: %v", err)
	}

	tests := []struct {
		name   string
		filter InstrumentoFilter
		want   []string
	}{
		{"no filter ordered by codigo", InstrumentoFilter{}, []string{"ACC-CL", "ACC_100%", "BONO-CL", "BONO-PE"}},
		{"q matches codigo case-insensitively", InstrumentoFilter{Q: "bono"}, []string{"BONO-CL", "BONO-PE"}},
		{"q matches nombre", InstrumentoFilter{Q: "BANCO"}, []string{"ACC-CL"}},
		{"q wildcards are literal", InstrumentoFilter{Q: "_100%"}, []string{"ACC_100%"}},
		{"tipo", InstrumentoFilter{Tipo: "ACCION"}, []string{"ACC-CL", "ACC_100%"}},
		{"mercado", InstrumentoFilter{Mercado: "PE"}, []string{"BONO-PE"}},
		{"estado", InstrumentoFilter{Estado: "INACTIVO"}, []string{"ACC_100%"}},
		{"filters combine with and", InstrumentoFilter{Tipo: "BONO", Mercado: "CL"}, []string{"BONO-CL"}},
		{"no match", InstrumentoFilter{Q: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListInstrumentos(tt.filter)
			testutil.AssertNoError(t, err)
			if !sameStrings(codigos(got), tt.want) {
				t.Errorf("expected %v, got %v", tt.want, codigos(got))
			}
		})
	}
}

func TestUpdateInstrumento(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewInstrumentoService(db)

	emision := testutil.Date(2023, 5, 1)
	in := instrumentoInput("ACC1", models.TipoAccion, models.MercadoChile)
	in.FechaEmision = &emision
	inst, err := svc.CreateInstrumento(in)
	testutil.AssertNoError(t, err)
	testutil.CreateTestInstrumento(t, db, "TAKEN", models.TipoBono, models.MercadoPeru)

	t.Run("overwrites_fields", func(t *testing.T) {
		upd := instrumentoInput("ACC2", models.TipoDerivado, models.MercadoColombia)
		upd.Estado = models.InstrumentoInactivo

		_, err := svc.UpdateInstrumento(inst.ID, upd)
		testutil.AssertNoError(t, err)

		got, err := svc.GetInstrumentoByID(inst.ID)
		testutil.AssertNoError(t, err)
		if got.Codigo != "ACC2" || got.Tipo != models.TipoDerivado || got.Mercado != models.MercadoColombia || got.Estado != models.InstrumentoInactivo {
			t.Errorf("unexpected instrument after update: %+v", got)
		}
		if got.FechaEmision != nil {
			t.Errorf("expected fecha emision to be cleared, got %v", got.FechaEmision)
		}
	})

	t.Run("keeps_own_codigo", func(t *testing.T) {
		_, err := svc.UpdateInstrumento(inst.ID, instrumentoInput("ACC2", models.TipoAccion, models.MercadoChile))
		testutil.AssertNoError(t, err)
	})

	t.Run("duplicate_codigo", func(t *testing.T) {
		_, err := svc.UpdateInstrumento(inst.ID, instrumentoInput("TAKEN", models.TipoAccion, models.MercadoChile))
		testutil.AssertAppError(t, err, "DUPLICATE_CODIGO")
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := svc.UpdateInstrumento(9999, instrumentoInput("X", models.TipoAccion, models.MercadoChile))
		testutil.AssertAppError(t, err, "INSTRUMENTO_NOT_FOUND")
	})
}

func TestDeleteInstrumento(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewInstrumentoService(db)

	inst := testutil.CreateTestInstrumento(t, db, "ACC1", models.TipoAccion, models.MercadoChile)
	other := testutil.CreateTestInstrumento(t, db, "ACC2", models.TipoAccion, models.MercadoChile)
	testutil.CreateTestCalificacion(t, db, inst.ID, models.CalificacionActiva, testutil.Date(2024, 1, 1), "1")
	testutil.CreateTestCalificacion(t, db, inst.ID, models.CalificacionInactiva, testutil.Date(2024, 2, 1), "")
	testutil.CreateTestCalificacion(t, db, other.ID, models.CalificacionActiva, testutil.Date(2024, 3, 1), "3")

	testutil.AssertNoError(t, svc.DeleteInstrumento(inst.ID))

	if n := testutil.Count(t, db, &models.Instrumento{}); n != 1 {
		t.Errorf("expected 1 instrument left, got %d", n)
	}
	if n := testutil.Count(t, db, &models.Calificacion{}); n != 1 {
		t.Errorf("expected only the other instrument's rating left, got %d", n)
	}

	testutil.AssertAppError(t, svc.DeleteInstrumento(inst.ID), "INSTRUMENTO_NOT_FOUND")
}
