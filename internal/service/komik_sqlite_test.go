package service

import (
	"KomikAPI/internal/model"
	"KomikAPI/internal/repo"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newSQLiteService — сервис поверх настоящего репозитория и in-memory SQLite.
func newSQLiteService(t *testing.T) *KomikService {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)}
	db, err := gorm.Open(dial, &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Komik{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return newTestService(repo.NewKomikRepository(db))
}

func TestKomikService_SQLite_CreateDeleteScenario(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	k, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(1), k.ID)
	assert.Equal(t, "A", k.Title)
	assert.Equal(t, "B", k.Description)
	assert.Equal(t, "C", k.Author)
	assert.Nil(t, k.ImageData)

	res, err := svc.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, res.Message, "1")

	_, err = svc.GetByID(ctx, 1)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestKomikService_SQLite_UniqueIDs(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		k, err := svc.Create(ctx, validInput())
		require.NoError(t, err)
		assert.False(t, seen[k.ID], "id %d reused", k.ID)
		seen[k.ID] = true
	}
	list, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 5)
}

func TestKomikService_SQLite_ImageRoundTripAndIdempotentReads(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()
	data := []byte{0x00, 0x10, 0xff, 0xfe, 'x'}

	in := validInput()
	in.ImageType = ptrStr("image/webp")
	in.ImageName = ptrStr("cover.webp")
	in.ImageData = data
	k, err := svc.Create(ctx, in)
	require.NoError(t, err)

	first, err := svc.GetByID(ctx, k.ID)
	require.NoError(t, err)
	second, err := svc.GetByID(ctx, k.ID)
	require.NoError(t, err)

	assert.Equal(t, base64.StdEncoding.EncodeToString(data), *first.ImageData)
	assert.Equal(t, *first, *second)

	list, err := svc.ListAll(ctx)
	require.NoError(t, err)
	if assert.Len(t, list, 1) {
		assert.Equal(t, *first.ImageData, *list[0].ImageData)
	}
}

func TestKomikService_SQLite_PartialUpdate(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	in := validInput()
	in.ImageName = ptrStr("c.png")
	in.ImageData = []byte{1, 2}
	k, err := svc.Create(ctx, in)
	require.NoError(t, err)

	upd := validInput()
	upd.Title = ptrStr("New")
	_, err = svc.Update(ctx, k.ID, upd)
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, k.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "B", got.Description)
	assert.Equal(t, "C", got.Author)
	assert.Equal(t, "c.png", *got.ImageName)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{1, 2}), *got.ImageData)

	// неуспешная проверка не меняет запись
	_, err = svc.Update(ctx, k.ID, KomikInput{Title: ptrStr("Other")})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	got, err = svc.GetByID(ctx, k.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
}

func TestKomikService_SQLite_MissingIDLeavesStorageIntact(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	var nf *NotFoundError
	_, err = svc.Update(ctx, -1, validInput())
	assert.ErrorAs(t, err, &nf)
	_, err = svc.Delete(ctx, 100)
	if assert.ErrorAs(t, err, &nf) {
		assert.Equal(t, int64(100), nf.ID)
	}

	list, err := svc.ListAll(ctx)
	require.NoError(t, err)
	if assert.Len(t, list, 1) {
		assert.Equal(t, "A", list[0].Title)
	}
}

func TestKomikService_SQLite_StaleWriteAfterDelete(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	k, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	// копия, прочитанная до удаления
	stale, err := svc.repo.FindByID(ctx, k.ID)
	require.NoError(t, err)

	_, err = svc.Delete(ctx, k.ID)
	require.NoError(t, err)

	stale.Title = "X"
	assert.ErrorIs(t, svc.repo.Update(ctx, stale), gorm.ErrRecordNotFound)

	_, err = svc.GetByID(ctx, k.ID)
	var nf *NotFoundError
	if assert.ErrorAs(t, err, &nf) {
		assert.Equal(t, k.ID, nf.ID)
	}
}
