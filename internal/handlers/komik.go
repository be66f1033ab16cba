package handlers

import (
	"KomikAPI/internal/config"
	"KomikAPI/internal/service"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// KomikHandler — REST-обёртка над KomikService.
type KomikHandler struct {
	KomikService *service.KomikService
	Logger       *zap.SugaredLogger
	Config       *config.Config
}

// NewKomikHandler создаёт хендлер komik
func NewKomikHandler(komikService *service.KomikService, logger *zap.SugaredLogger, cfg *config.Config) *KomikHandler {
	return &KomikHandler{KomikService: komikService, Logger: logger, Config: cfg}
}

// ErrorResponse — тело ответа с ошибкой. Errors заполняется только для ошибок проверки.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

var errImageTooLarge = errors.New("image too large")

// komikRequest — JSON-тело create/update. Текстовые поля принимают строку, число или bool.
type komikRequest struct {
	Title       jsonText `json:"title"`
	Description jsonText `json:"description"`
	Author      jsonText `json:"author"`
	ImageType   jsonText `json:"imageType"`
	ImageName   jsonText `json:"imageName"`
	ImageData   []byte   `json:"imageData"`
}

func (req komikRequest) toInput() service.KomikInput {
	return service.KomikInput{
		Title:       req.Title.val,
		Description: req.Description.val,
		Author:      req.Author.val,
		ImageType:   req.ImageType.val,
		ImageName:   req.ImageName.val,
		ImageData:   req.ImageData,
	}
}

// jsonText — скалярное JSON-значение, приведённое к строке.
// null, false и 0 считаются непереданными; объекты и массивы отклоняются.
type jsonText struct {
	val *string
}

func (t *jsonText) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	t.val = nil
	switch x := v.(type) {
	case nil:
	case string:
		t.val = &x
	case bool:
		if x {
			s := "true"
			t.val = &s
		}
	case float64:
		if x != 0 {
			s := strconv.FormatFloat(x, 'f', -1, 64)
			t.val = &s
		}
	default:
		return fmt.Errorf("expected scalar, got %s", b)
	}
	return nil
}

// Create создание записи (JSON или multipart/form-data)
func (h *KomikHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := h.decodeInput(w, r)
	if err != nil {
		h.writeDecodeError(w, "Create", err)
		return
	}

	k, err := h.KomikService.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}
	writeJSON(w, http.StatusCreated, k)
}

// List все записи
func (h *KomikHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.KomikService.ListAll(r.Context())
	if err != nil {
		h.writeError(w, "List", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Get запись по id
func (h *KomikHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	v, err := h.KomikService.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "Get", err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Update частичное обновление записи
func (h *KomikHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	in, err := h.decodeInput(w, r)
	if err != nil {
		h.writeDecodeError(w, "Update", err)
		return
	}

	k, err := h.KomikService.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}
	writeJSON(w, http.StatusOK, k)
}

// Delete удаление записи
func (h *KomikHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	res, err := h.KomikService.Delete(r.Context(), id)
	if err != nil {
		h.writeError(w, "Delete", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *KomikHandler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.Logger.Warnw("invalid id", "value", raw, "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
		return 0, false
	}
	return id, true
}

// decodeInput читает тело запроса в KomikInput.
// JSON: imageData передаётся base64-строкой. Multipart: текстовые поля + файл "image".
func (h *KomikHandler) decodeInput(w http.ResponseWriter, r *http.Request) (service.KomikInput, error) {
	var in service.KomikInput

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req komikRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return in, fmt.Errorf("decode json: %w", err)
		}
		return req.toInput(), nil
	}

	// Лимит общего тела запроса: обложка + 1 МБ на текстовые поля
	maxImage := h.Config.ImageMaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxImage+1*1024*1024)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return in, errImageTooLarge
		}
		return in, fmt.Errorf("parse multipart: %w", err)
	}

	in.Title = formValue(r, "title")
	in.Description = formValue(r, "description")
	in.Author = formValue(r, "author")
	in.ImageType = formValue(r, "imageType")
	in.ImageName = formValue(r, "imageName")

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil
	}
	if err != nil {
		return in, fmt.Errorf("read image: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return in, fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > maxImage {
		return in, errImageTooLarge
	}
	in.ImageData = data
	if ct := header.Header.Get("Content-Type"); ct != "" {
		in.ImageType = &ct
	}
	if header.Filename != "" {
		name := header.Filename
		in.ImageName = &name
	}
	return in, nil
}

// formValue возвращает nil, если поле не передано вовсе.
func formValue(r *http.Request, key string) *string {
	vals, ok := r.MultipartForm.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	v := vals[0]
	return &v
}

func (h *KomikHandler) writeDecodeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, errImageTooLarge) {
		h.Logger.Warnw(op+": payload too large", "limit_mb", h.Config.ImageMaxSizeMB)
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Message: "payload too large"})
		return
	}
	h.Logger.Warnw(op+": invalid request body", "error", err)
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request"})
}

// writeError маппит ошибки сервиса в HTTP-ответ.
func (h *KomikHandler) writeError(w http.ResponseWriter, op string, err error) {
	var ve *service.ValidationError
	var nf *service.NotFoundError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: ve.Error(), Errors: ve.Errors})
	case errors.As(err, &nf):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Message: nf.Error()})
	default:
		h.Logger.Errorw(op+": service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
