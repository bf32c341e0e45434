package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripjournal/backend/internal/domain"
	"github.com/tripjournal/backend/internal/handler"
	"github.com/tripjournal/backend/internal/handler/gen"
)

// mockPhotoServicer is a test double for handler.PhotoServicer.
type mockPhotoServicer struct {
	create func(ctx context.Context, owner domain.Owner, photo domain.Photo) (domain.Photo, error)
	list   func(ctx context.Context, owner domain.Owner, tripID uuid.UUID) ([]domain.Photo, error)
	delete func(ctx context.Context, owner domain.Owner, tripID, photoID uuid.UUID) error
}

func (m *mockPhotoServicer) Create(ctx context.Context, owner domain.Owner, p domain.Photo) (domain.Photo, error) {
	return m.create(ctx, owner, p)
}
func (m *mockPhotoServicer) List(ctx context.Context, owner domain.Owner, tripID uuid.UUID) ([]domain.Photo, error) {
	return m.list(ctx, owner, tripID)
}
func (m *mockPhotoServicer) Delete(ctx context.Context, owner domain.Owner, tripID, photoID uuid.UUID) error {
	return m.delete(ctx, owner, tripID, photoID)
}

var _ handler.PhotoServicer = (*mockPhotoServicer)(nil)

func newPhotoHTTPHandler(svc handler.PhotoServicer) http.Handler {
	return handler.NewServer(nil, nil, svc, nil, discardLogger()).Routes(asOwner)
}

func TestCreatePhoto_201(t *testing.T) {
	tripID := uuid.New()
	svc := &mockPhotoServicer{
		create: func(_ context.Context, _ domain.Owner, p domain.Photo) (domain.Photo, error) {
			p.ID = uuid.New()
			p.CreatedAt = time.Now().UTC()
			return p, nil
		},
	}

	body := jsonBody(t, map[string]any{"url": "https://images.example.com/torii.jpg", "filename": "torii.jpg"})
	req := httptest.NewRequest(http.MethodPost, "/trips/"+tripID.String()+"/photos", body)
	rec := httptest.NewRecorder()

	newPhotoHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp gen.Photo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, tripID, resp.TripId)
	assert.Equal(t, "https://images.example.com/torii.jpg", resp.Url)
	require.NotNil(t, resp.Filename)
	assert.Equal(t, "torii.jpg", *resp.Filename)
}

func TestCreatePhoto_422_NonHTTPURL(t *testing.T) {
	svc := &mockPhotoServicer{
		create: func(_ context.Context, _ domain.Owner, _ domain.Photo) (domain.Photo, error) {
			return domain.Photo{}, fmt.Errorf("%w: url must be an http(s) URL", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{"url": "file:///etc/passwd"})
	req := httptest.NewRequest(http.MethodPost, "/trips/"+uuid.NewString()+"/photos", body)
	rec := httptest.NewRecorder()

	newPhotoHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "url must be an http(s) URL", decodeError(t, rec).Error.Message)
}

func TestListPhotos_200(t *testing.T) {
	tripID := uuid.New()
	svc := &mockPhotoServicer{
		list: func(_ context.Context, _ domain.Owner, _ uuid.UUID) ([]domain.Photo, error) {
			return []domain.Photo{
				{ID: uuid.New(), TripID: tripID, URL: "https://x.example.com/2.jpg"},
				{ID: uuid.New(), TripID: tripID, URL: "https://x.example.com/1.jpg"},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+tripID.String()+"/photos", nil)
	rec := httptest.NewRecorder()

	newPhotoHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []gen.Photo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "https://x.example.com/2.jpg", resp[0].Url)
	assert.Nil(t, resp[0].Filename)
}

func TestDeletePhoto_204(t *testing.T) {
	svc := &mockPhotoServicer{
		delete: func(_ context.Context, _ domain.Owner, _, _ uuid.UUID) error { return nil },
	}

	req := httptest.NewRequest(http.MethodDelete, "/trips/"+uuid.NewString()+"/photos/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newPhotoHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeletePhoto_404_PhotoMissing(t *testing.T) {
	svc := &mockPhotoServicer{
		delete: func(_ context.Context, _ domain.Owner, _, _ uuid.UUID) error { return domain.ErrNotFound },
	}

	req := httptest.NewRequest(http.MethodDelete, "/trips/"+uuid.NewString()+"/photos/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newPhotoHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "photo not found", decodeError(t, rec).Error.Message)
}

func TestDeletePhoto_404_TripMissing(t *testing.T) {
	svc := &mockPhotoServicer{
		delete: func(_ context.Context, _ domain.Owner, _, _ uuid.UUID) error {
			return fmt.Errorf("service.PhotoService.Delete: %w", domain.ErrTripNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/trips/"+uuid.NewString()+"/photos/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newPhotoHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "trip not found", decodeError(t, rec).Error.Message)
}

func TestDeletePhoto_404_MalformedPhotoID(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/trips/"+uuid.NewString()+"/photos/42", nil)
	rec := httptest.NewRecorder()

	newPhotoHTTPHandler(&mockPhotoServicer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "photo not found", decodeError(t, rec).Error.Message)
}
