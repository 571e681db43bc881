package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/ik-portal/hr-backend/internal/pkg/database"
)

// TestDatabaseSetup holds the connection used by the repository tests
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and skips the test when it is unset
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	setup := &TestDatabaseSetup{DB: db}
	ctx := context.Background()
	if err := setup.CreateSchema(ctx); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	if err := setup.TruncateAllTables(ctx); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
	t.Cleanup(setup.Close)

	return setup
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS departman (
		departman_id BIGSERIAL PRIMARY KEY,
		departman_adi VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS personel (
		personel_id BIGSERIAL PRIMARY KEY,
		ad VARCHAR(100) NOT NULL,
		soyad VARCHAR(100) NOT NULL,
		ise_giris_tarihi DATE NOT NULL,
		departman_id BIGINT REFERENCES departman(departman_id),
		aktif_mi BOOLEAN NOT NULL DEFAULT true
	)`,
	`CREATE TABLE IF NOT EXISTS pozisyon (
		pozisyon_id BIGSERIAL PRIMARY KEY,
		pozisyon_adi VARCHAR(255) NOT NULL,
		taban_maas NUMERIC(12, 2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS personel_pozisyon (
		personel_pozisyon_id BIGSERIAL PRIMARY KEY,
		personel_id BIGINT NOT NULL REFERENCES personel(personel_id),
		pozisyon_id BIGINT NOT NULL REFERENCES pozisyon(pozisyon_id),
		baslangic_tarihi DATE NOT NULL,
		guncel_mi BOOLEAN NOT NULL DEFAULT true
	)`,
	`CREATE TABLE IF NOT EXISTS devam (
		devam_id BIGSERIAL PRIMARY KEY,
		personel_id BIGINT NOT NULL REFERENCES personel(personel_id),
		tarih DATE NOT NULL,
		durum VARCHAR(50) NOT NULL DEFAULT 'Normal',
		ek_mesai_saat NUMERIC(5, 2) DEFAULT 0,
		UNIQUE (personel_id, tarih)
	)`,
	`CREATE TABLE IF NOT EXISTS izin_turu (
		izin_turu_id BIGSERIAL PRIMARY KEY,
		izin_adi VARCHAR(255) NOT NULL,
		yillik_hak_gun INT NOT NULL DEFAULT 0,
		ucretli_mi BOOLEAN NOT NULL DEFAULT true
	)`,
	`CREATE TABLE IF NOT EXISTS izin_kayit (
		izin_kayit_id BIGSERIAL PRIMARY KEY,
		personel_id BIGINT NOT NULL REFERENCES personel(personel_id),
		izin_turu_id BIGINT NOT NULL REFERENCES izin_turu(izin_turu_id),
		baslangic_tarihi DATE NOT NULL,
		bitis_tarihi DATE NOT NULL,
		gun_sayisi INT NOT NULL,
		onay_durumu VARCHAR(50) NOT NULL DEFAULT 'Beklemede'
	)`,
	`CREATE TABLE IF NOT EXISTS maas_bileseni (
		bilesen_id BIGSERIAL PRIMARY KEY,
		bilesen_adi VARCHAR(255) NOT NULL UNIQUE,
		bilesen_tipi VARCHAR(100) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS maas_hesap (
		maas_hesap_id BIGSERIAL PRIMARY KEY,
		personel_id BIGINT NOT NULL REFERENCES personel(personel_id),
		donem_yil INT NOT NULL,
		donem_ay INT NOT NULL,
		brut_maas NUMERIC(12, 2) NOT NULL,
		toplam_ekleme NUMERIC(12, 2) NOT NULL DEFAULT 0,
		toplam_kesinti NUMERIC(12, 2) NOT NULL DEFAULT 0,
		net_maas NUMERIC(12, 2) NOT NULL,
		odeme_tarihi DATE,
		odendi_mi BOOLEAN NOT NULL DEFAULT false,
		UNIQUE (personel_id, donem_yil, donem_ay)
	)`,
	`CREATE TABLE IF NOT EXISTS maas_detay (
		maas_detay_id BIGSERIAL PRIMARY KEY,
		maas_hesap_id BIGINT NOT NULL REFERENCES maas_hesap(maas_hesap_id) ON DELETE CASCADE,
		bilesen_id BIGINT NOT NULL REFERENCES maas_bileseni(bilesen_id),
		tutar NUMERIC(12, 2) NOT NULL
	)`,
}

// CreateSchema creates the tables the repositories read and write
func (t *TestDatabaseSetup) CreateSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := t.DB.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// TruncateAllTables removes all rows from the test tables
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"maas_detay",
		"maas_hesap",
		"maas_bileseni",
		"izin_kayit",
		"izin_turu",
		"devam",
		"personel_pozisyon",
		"pozisyon",
		"personel",
		"departman",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes the database connection
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
