package model

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Komik — серверная модель записи каталога комиксов.
type Komik struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	Author      string `gorm:"not null" json:"author"`

	// Обложка: все поля опциональны и независимы друг от друга
	ImageType *string `json:"imageType"`
	ImageName *string `json:"imageName"`
	ImageData []byte  `json:"imageData"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName фиксирует имя таблицы.
func (Komik) TableName() string { return "komiks" }

// ConstraintError — нарушение ограничения колонки на уровне хранилища.
type ConstraintError struct {
	Field   string
	Message string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate проверяет обязательные текстовые колонки (title, description, author).
// Возвращает первое нарушение.
func (k *Komik) Validate() error {
	required := []struct {
		field, value, msg string
	}{
		{"title", k.Title, "Title tidak boleh kosong"},
		{"description", k.Description, "Description tidak boleh kosong"},
		{"author", k.Author, "Author tidak boleh kosong"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ConstraintError{Field: r.field, Message: r.msg}
		}
	}
	return nil
}

// BeforeSave вызывается gorm перед INSERT/UPDATE.
func (k *Komik) BeforeSave(tx *gorm.DB) error {
	return k.Validate()
}

// KomikView — представление записи для чтения: ImageData отдаётся как base64.
type KomikView struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	ImageType   *string   `json:"imageType"`
	ImageName   *string   `json:"imageName"`
	ImageData   *string   `json:"imageData"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// View строит KomikView. Сохранённые байты не изменяются.
func (k *Komik) View() KomikView {
	v := KomikView{
		ID:          k.ID,
		Title:       k.Title,
		Description: k.Description,
		Author:      k.Author,
		ImageType:   k.ImageType,
		ImageName:   k.ImageName,
		CreatedAt:   k.CreatedAt,
		UpdatedAt:   k.UpdatedAt,
	}
	if k.ImageData != nil {
		enc := base64.StdEncoding.EncodeToString(k.ImageData)
		v.ImageData = &enc
	}
	return v
}
