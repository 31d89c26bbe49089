package httpx

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Daniyarzr/Flower-bot/internal/catalog"
)

const maxUploadBytes = 10 << 20

type productForm struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"max=2000"`
	Price       int64  `validate:"required,min=1"`
	Category    string `validate:"required,oneof=bouquet composition"`
}

type catalogData struct {
	pageHead
	Products []catalog.Product
	Error    string
}

func (h *Handler) catalogPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	list, err := h.Products.All(ctx)
	if err != nil {
		h.fail(w, "catalog: list", err)
		return
	}
	data := catalogData{pageHead: h.head("catalog"), Products: list}
	if r.URL.Query().Get("error") == "1" {
		data.Error = "Проверьте форму: название, цена и категория обязательны"
	}
	render(w, "catalog.html", data)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	form, ok := h.parseProductForm(r)
	if !ok {
		http.Redirect(w, r, "/catalog?error=1", http.StatusFound)
		return
	}
	imageURL, err := h.saveUpload(r)
	if err != nil {
		h.fail(w, "catalog: save upload", err)
		return
	}

	p := catalog.Product{
		Title:       form.Title,
		Description: form.Description,
		Price:       form.Price,
		Category:    catalog.Category(form.Category),
		ImageURL:    imageURL,
		IsActive:    true,
	}
	if err := h.Products.Create(ctx, &p); err != nil {
		h.fail(w, "catalog: create", err)
		return
	}
	h.bumpCatalog(ctx)
	http.Redirect(w, r, "/catalog", http.StatusFound)
}

type productFormData struct {
	pageHead
	Product       catalog.Product
	CategoryValue string
	Error         string
}

func (h *Handler) editProductPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	p, err := h.Products.Get(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.fail(w, "catalog: get", err)
		return
	}
	data := productFormData{
		pageHead:      h.head("catalog"),
		Product:       *p,
		CategoryValue: string(p.Category),
	}
	if r.URL.Query().Get("error") == "1" {
		data.Error = "Проверьте форму: название, цена и категория обязательны"
	}
	render(w, "product_form.html", data)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	p, err := h.Products.Get(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.fail(w, "catalog: get", err)
		return
	}

	form, ok := h.parseProductForm(r)
	if !ok {
		http.Redirect(w, r, "/catalog/"+chi.URLParam(r, "id")+"/edit?error=1", http.StatusFound)
		return
	}
	imageURL, err := h.saveUpload(r)
	if err != nil {
		h.fail(w, "catalog: save upload", err)
		return
	}

	p.Title = form.Title
	p.Description = form.Description
	p.Price = form.Price
	p.Category = catalog.Category(form.Category)
	if imageURL != "" {
		h.removeUpload(p.ImageURL)
		p.ImageURL = imageURL
		// Telegram's cached copy belongs to the old picture.
		p.PhotoFileID = ""
	}
	if err := h.Products.Update(ctx, p); err != nil {
		h.fail(w, "catalog: update", err)
		return
	}
	h.bumpCatalog(ctx)
	http.Redirect(w, r, "/catalog", http.StatusFound)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	p, err := h.Products.Get(ctx, id)
	if err != nil && !errors.Is(err, catalog.ErrNotFound) {
		h.fail(w, "catalog: get", err)
		return
	}
	if err := h.Products.Delete(ctx, id); err != nil && !errors.Is(err, catalog.ErrNotFound) {
		h.fail(w, "catalog: delete", err)
		return
	}
	if p != nil {
		h.removeUpload(p.ImageURL)
	}
	h.bumpCatalog(ctx)
	http.Redirect(w, r, "/catalog", http.StatusFound)
}

func (h *Handler) toggleProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	p, err := h.Products.Get(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.fail(w, "catalog: get", err)
		return
	}
	if err := h.Products.SetActive(ctx, id, !p.IsActive); err != nil {
		h.fail(w, "catalog: toggle", err)
		return
	}
	h.bumpCatalog(ctx)
	http.Redirect(w, r, "/catalog", http.StatusFound)
}

func (h *Handler) parseProductForm(r *http.Request) (productForm, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return productForm{}, false
	}
	price, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("price")), 10, 64)
	if err != nil {
		return productForm{}, false
	}
	form := productForm{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Price:       price,
		Category:    r.FormValue("category"),
	}
	if err := h.Validate.Struct(form); err != nil {
		return productForm{}, false
	}
	return form, true
}

// saveUpload stores the submitted image under a fresh name and returns the
// public URL, or "" when the field was left empty.
func (h *Handler) saveUpload(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		ext = ".jpg"
	}
	if err := os.MkdirAll(h.Config.UploadDir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(h.Config.UploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return "/static/uploads/" + name, nil
}

func (h *Handler) removeUpload(imageURL string) {
	name, ok := strings.CutPrefix(imageURL, "/static/uploads/")
	if !ok || name == "" {
		return
	}
	_ = os.Remove(filepath.Join(h.Config.UploadDir, filepath.Base(name)))
}

// bumpCatalog invalidates the bot's cached listings. Losing the bump only
// delays the bot by the cache TTL, so failures are logged and ignored.
func (h *Handler) bumpCatalog(ctx context.Context) {
	if err := h.Marker.Bump(ctx); err != nil {
		log.Printf("httpx: bump catalog version: %v", err)
	}
}
