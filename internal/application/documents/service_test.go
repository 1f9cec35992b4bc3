package documents

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/inesh111/pj-motors/internal/models"
	"github.com/inesh111/pj-motors/internal/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDocumentsTest(t *testing.T) (*Service, *gorm.DB, uint) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Car{}, &models.CarDocument{}))

	car := &models.Car{ChassisCode: "ZVW51-0001", Make: "Toyota", Model: "Prius", Status: models.StatusJapan, TotalPurchasePriceAUD: 18000}
	require.NoError(t, db.Create(car).Error)

	svc := &Service{DB: db, Root: t.TempDir()}
	return svc, db, car.ID
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "invoice.pdf", SanitizeName("invoice.pdf"))
	assert.Equal(t, "my_file__1_.pdf", SanitizeName("my file (1).pdf"))
	assert.Equal(t, "a-b_c.2.xlsx", SanitizeName("a-b_c.2.xlsx"))
	assert.Equal(t, "document", SanitizeName(""))
}

func TestSlotKindOf(t *testing.T) {
	assert.Equal(t, MultiSlot, SlotKindOf(models.DocCarPicture))
	assert.Equal(t, SingleSlot, SlotKindOf(models.DocExportCert))
	assert.Equal(t, SingleSlot, SlotKindOf(models.DocRWC))
	assert.Equal(t, SingleSlot, SlotKindOf(models.DocROC))
	assert.Equal(t, SingleSlot, SlotKindOf("SOME_FUTURE_TYPE"))
}

func TestAttach_Validation(t *testing.T) {
	svc, _, carID := setupDocumentsTest(t)
	ctx := context.Background()

	_, err := svc.Attach(ctx, carID, "", "a.pdf", []byte("x"))
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = svc.Attach(ctx, carID, models.DocExportCert, "a.pdf", nil)
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = svc.Attach(ctx, 9999, models.DocExportCert, "a.pdf", []byte("x"))
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestAttach_WritesFileBeforeMetadata(t *testing.T) {
	svc, _, carID := setupDocumentsTest(t)

	doc, err := svc.Attach(context.Background(), carID, models.DocExportCert, "export cert.pdf", []byte("cert-bytes"))
	require.NoError(t, err)
	assert.Equal(t, carID, doc.CarID)
	assert.Equal(t, "export cert.pdf", doc.Name)
	assert.Contains(t, doc.FilePath, "_EXPORT_CERT_export_cert.pdf")

	// Stored path is relative to the root.
	assert.False(t, filepath.IsAbs(doc.FilePath))
	data, err := os.ReadFile(filepath.Join(svc.Root, filepath.FromSlash(doc.FilePath)))
	require.NoError(t, err)
	assert.Equal(t, []byte("cert-bytes"), data)
}

func TestAttach_SingleSlotSupersedes(t *testing.T) {
	svc, db, carID := setupDocumentsTest(t)
	ctx := context.Background()

	first, err := svc.Attach(ctx, carID, models.DocExportCert, "first.pdf", []byte("one"))
	require.NoError(t, err)
	second, err := svc.Attach(ctx, carID, models.DocExportCert, "second.pdf", []byte("two"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	var docs []models.CarDocument
	require.NoError(t, db.Where("car_id = ? AND type = ?", carID, models.DocExportCert).Find(&docs).Error)
	require.Len(t, docs, 1)
	assert.Equal(t, second.ID, docs[0].ID)
	assert.Equal(t, "second.pdf", docs[0].Name)

	// Old backing file was cleaned up, new one is readable.
	_, err = os.Stat(filepath.Join(svc.Root, filepath.FromSlash(first.FilePath)))
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(filepath.Join(svc.Root, filepath.FromSlash(second.FilePath)))
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), data)
}

func TestAttach_SupersedeSurvivesMissingOldFile(t *testing.T) {
	svc, _, carID := setupDocumentsTest(t)
	ctx := context.Background()

	first, err := svc.Attach(ctx, carID, models.DocInvoiceFromJapan, "inv1.pdf", []byte("one"))
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(svc.Root, filepath.FromSlash(first.FilePath))))

	second, err := svc.Attach(ctx, carID, models.DocInvoiceFromJapan, "inv2.pdf", []byte("two"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAttach_CarPictureAdditive(t *testing.T) {
	svc, db, carID := setupDocumentsTest(t)
	ctx := context.Background()

	names := []string{"front.jpg", "rear.jpg", "interior.jpg"}
	for _, name := range names {
		_, err := svc.Attach(ctx, carID, models.DocCarPicture, name, []byte(name))
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.CarDocument{}).Where("car_id = ? AND type = ?", carID, models.DocCarPicture).Count(&count).Error)
	assert.Equal(t, int64(len(names)), count)
}

func TestFetch_RoundTrip(t *testing.T) {
	svc, _, carID := setupDocumentsTest(t)
	ctx := context.Background()

	payload := []byte("%PDF-1.4 fake")
	doc, err := svc.Attach(ctx, carID, models.DocAuctionSheet, "sheet.pdf", payload)
	require.NoError(t, err)

	res, err := svc.Fetch(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, payload, res.Data)
	assert.Equal(t, "application/pdf", res.ContentType)
	assert.Equal(t, "sheet.pdf", res.Name)
}

func TestFetch_NotFound(t *testing.T) {
	svc, _, _ := setupDocumentsTest(t)
	_, err := svc.Fetch(context.Background(), 12345)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestFetch_FileMissingOnDisk(t *testing.T) {
	svc, _, carID := setupDocumentsTest(t)
	ctx := context.Background()

	doc, err := svc.Attach(ctx, carID, models.DocCompliance, "c.pdf", []byte("x"))
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(svc.Root, filepath.FromSlash(doc.FilePath))))

	_, err = svc.Fetch(ctx, doc.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.Storage, apperr.KindOf(err))
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentTypeFor("a/b.pdf"))
	assert.Equal(t, "image/jpeg", ContentTypeFor("x.JPG"))
	assert.Equal(t, "image/jpeg", ContentTypeFor("x.jpeg"))
	assert.Equal(t, "image/png", ContentTypeFor("x.png"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ContentTypeFor("x.xlsx"))
	assert.Equal(t, "application/vnd.ms-excel", ContentTypeFor("x.xls"))
	assert.Equal(t, "application/octet-stream", ContentTypeFor("x.zip"))
	assert.Equal(t, "application/octet-stream", ContentTypeFor("noext"))
}

func TestRemoveCarFiles(t *testing.T) {
	svc, _, carID := setupDocumentsTest(t)
	ctx := context.Background()

	doc, err := svc.Attach(ctx, carID, models.DocCarPicture, "p.png", []byte("img"))
	require.NoError(t, err)

	svc.RemoveCarFiles(carID)
	_, err = os.Stat(filepath.Join(svc.Root, filepath.FromSlash(doc.FilePath)))
	assert.True(t, os.IsNotExist(err))

	// Removing an already-gone directory is a no-op.
	svc.RemoveCarFiles(carID)
}
