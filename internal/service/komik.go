package service

import (
	"KomikAPI/internal/model"
	"KomikAPI/internal/repo"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// KomikInput — данные для создания/обновления. nil означает "поле не передано".
type KomikInput struct {
	Title       *string `json:"title" validate:"required,notblank"`
	Description *string `json:"description" validate:"required,notblank"`
	Author      *string `json:"author" validate:"required,notblank"`
	ImageType   *string `json:"imageType"`
	ImageName   *string `json:"imageName"`
	ImageData   []byte  `json:"imageData"`
}

// DeleteResult — подтверждение удаления.
type DeleteResult struct {
	Message string `json:"message"`
}

// KomikService инкапсулирует бизнес-логику работы с Komik.
type KomikService struct {
	repo   repo.KomikRepository
	logger *zap.SugaredLogger
}

func NewKomikService(r repo.KomikRepository, logger *zap.SugaredLogger) *KomikService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &KomikService{repo: r, logger: logger}
}

// Create проверяет вход и добавляет новую запись. Пустые поля обложки сохраняются как NULL.
func (s *KomikService) Create(ctx context.Context, in KomikInput) (*model.Komik, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	k := &model.Komik{
		Title:       *in.Title,
		Description: *in.Description,
		Author:      *in.Author,
		ImageType:   nonEmpty(in.ImageType),
		ImageName:   nonEmpty(in.ImageName),
	}
	if len(in.ImageData) > 0 {
		k.ImageData = in.ImageData
	}

	if err := s.repo.Create(ctx, k); err != nil {
		return nil, err
	}
	s.logger.Infow("komik created", "id", k.ID, "has_image", k.ImageData != nil)
	return k, nil
}

// ListAll возвращает все записи; ImageData отдаётся в base64.
func (s *KomikService) ListAll(ctx context.Context) ([]model.KomikView, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]model.KomikView, 0, len(list))
	for i := range list {
		views = append(views, list[i].View())
	}
	return views, nil
}

// GetByID возвращает запись по ID; ImageData отдаётся в base64.
func (s *KomikService) GetByID(ctx context.Context, id int64) (*model.KomikView, error) {
	k, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	v := k.View()
	return &v, nil
}

// Update применяет к записи только переданные поля.
// Проверка та же, что и при создании: title, description и author обязательны.
func (s *KomikService) Update(ctx context.Context, id int64, in KomikInput) (*model.Komik, error) {
	k, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := Validate(in); err != nil {
		return nil, err
	}

	applyInput(k, in)

	if err := s.repo.Update(ctx, k); err != nil {
		// запись удалили между чтением и записью
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, err
	}
	s.logger.Infow("komik updated", "id", k.ID)
	return k, nil
}

// Delete безвозвратно удаляет запись.
func (s *KomikService) Delete(ctx context.Context, id int64) (DeleteResult, error) {
	k, err := s.find(ctx, id)
	if err != nil {
		return DeleteResult{}, err
	}

	if err := s.repo.Delete(ctx, k); err != nil {
		return DeleteResult{}, err
	}
	s.logger.Infow("komik deleted", "id", id)
	return DeleteResult{Message: fmt.Sprintf("Komik dengan ID %d berhasil dihapus", id)}, nil
}

// find маппит gorm.ErrRecordNotFound в NotFoundError, остальные ошибки отдаёт как есть.
func (s *KomikService) find(ctx context.Context, id int64) (*model.Komik, error) {
	k, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, err
	}
	if k == nil {
		return nil, &NotFoundError{ID: id}
	}
	return k, nil
}

func applyInput(k *model.Komik, in KomikInput) {
	if in.Title != nil {
		k.Title = *in.Title
	}
	if in.Description != nil {
		k.Description = *in.Description
	}
	if in.Author != nil {
		k.Author = *in.Author
	}
	if in.ImageType != nil {
		k.ImageType = in.ImageType
	}
	if in.ImageName != nil {
		k.ImageName = in.ImageName
	}
	if in.ImageData != nil {
		k.ImageData = in.ImageData
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
