package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"nuam/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Email:    username + "@test.com",
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestInstrumento creates an active instrument.
func CreateTestInstrumento(t *testing.T, db *gorm.DB, codigo string, tipo models.TipoInstrumento, mercado models.Mercado) *models.Instrumento {
	t.Helper()

	inst := &models.Instrumento{
		Codigo:  codigo,
		Nombre:  fmt.Sprintf("Instrumento %s", codigo),
		Tipo:    tipo,
		Mercado: mercado,
		Estado:  models.InstrumentoActivo,
	}
	if err := db.Create(inst).Error; err != nil {
		t.Fatalf("failed to create test instrumento: %v", err)
	}
	return inst
}

// CreateTestCalificacion creates a rating. An empty monto leaves it unset.
func CreateTestCalificacion(t *testing.T, db *gorm.DB, instrumentoID uint, estado models.EstadoCalificacion, fecha time.Time, monto string) *models.Calificacion {
	t.Helper()

	m, err := models.ParseMonto(monto)
	if err != nil {
		t.Fatalf("invalid fixture monto: %v", err)
	}
	cal := &models.Calificacion{
		InstrumentoID: instrumentoID,
		Tipo:          models.CalificacionRiesgo,
		Estado:        estado,
		Fecha:         models.DateOnly(fecha),
		Monto:         m,
	}
	if err := db.Create(cal).Error; err != nil {
		t.Fatalf("failed to create test calificacion: %v", err)
	}
	return cal
}

// Date builds a UTC date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
