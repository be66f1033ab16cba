package repo

import (
	"KomikAPI/internal/model"
	"context"

	"gorm.io/gorm"
)

// KomikRepository — контракт доступа к таблице komiks для слоя сервиса.
// Ошибки gorm/драйвера возвращаются как есть.
type KomikRepository interface {
	// Create вставляет запись и заполняет k.ID.
	Create(ctx context.Context, k *model.Komik) error

	// FindAll возвращает все записи в порядке, который отдаёт БД.
	FindAll(ctx context.Context) ([]model.Komik, error)

	// FindByID ищет запись по первичному ключу. Если не найдено — gorm.ErrRecordNotFound.
	FindByID(ctx context.Context, id int64) (*model.Komik, error)

	// Update сохраняет все поля записи. Если строки уже нет — gorm.ErrRecordNotFound,
	// запись заново не создаётся.
	Update(ctx context.Context, k *model.Komik) error

	// Delete безвозвратно удаляет запись.
	Delete(ctx context.Context, k *model.Komik) error
}

type komikRepo struct {
	db *gorm.DB
}

// NewKomikRepository создаёт реализацию репозитория для Komik.
func NewKomikRepository(db *gorm.DB) KomikRepository {
	return &komikRepo{db: db}
}

func (r *komikRepo) Create(ctx context.Context, k *model.Komik) error {
	return r.db.WithContext(ctx).Create(k).Error
}

func (r *komikRepo) FindAll(ctx context.Context) ([]model.Komik, error) {
	var list []model.Komik
	if err := r.db.WithContext(ctx).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *komikRepo) FindByID(ctx context.Context, id int64) (*model.Komik, error) {
	var k model.Komik
	if err := r.db.WithContext(ctx).First(&k, id).Error; err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *komikRepo) Update(ctx context.Context, k *model.Komik) error {
	// Save при 0 затронутых строк делает INSERT, поэтому только UPDATE по первичному ключу
	tx := r.db.WithContext(ctx).Model(k).Select("*").Omit("id", "created_at").Updates(k)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *komikRepo) Delete(ctx context.Context, k *model.Komik) error {
	return r.db.WithContext(ctx).Delete(k).Error
}
