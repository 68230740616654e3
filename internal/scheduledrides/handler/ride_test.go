package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"prebook/internal/scheduledrides/notify"
	apperrors "prebook/pkg/errors"
	"prebook/pkg/logger"
	"prebook/pkg/model"
)

type mockLifecycleService struct {
	createFunc func(ctx context.Context, req *model.CreateRideRequest) (*model.ScheduledRide, []string, error)
	cancelFunc func(ctx context.Context, id string) error
	getFunc    func(ctx context.Context, id string) (*model.ScheduledRide, error)
	listFunc   func(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.ScheduledRide, int64, error)
	triggered  int
}

func (m *mockLifecycleService) Create(ctx context.Context, req *model.CreateRideRequest) (*model.ScheduledRide, []string, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &model.ScheduledRide{ID: "r1", Status: model.StatusPending}, nil, nil
}

func (m *mockLifecycleService) Cancel(ctx context.Context, id string) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id)
	}
	return nil
}

func (m *mockLifecycleService) Get(ctx context.Context, id string) (*model.ScheduledRide, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockLifecycleService) ListByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.ScheduledRide, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, ownerID, limit, offset)
	}
	return []*model.ScheduledRide{}, 0, nil
}

func (m *mockLifecycleService) Reconcile(ctx context.Context) error { return nil }

func (m *mockLifecycleService) Cleanup(ctx context.Context) error { return nil }

func (m *mockLifecycleService) RunReconcileLoop(ctx context.Context) {}

func (m *mockLifecycleService) TriggerReconcile() { m.triggered++ }

func (m *mockLifecycleService) HandleNotification(notify.Payload) {}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func newRouter(h *RideHandler) *httprouter.Router {
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func TestCreate_HTTPStatuses(t *testing.T) {
	scheduledTime := time.Now().Add(2 * time.Hour).UTC()
	body, _ := json.Marshal(model.CreateRideRequest{
		OwnerID:       "user-1",
		Pickup:        model.GeoPoint{Lat: 12.97, Lng: 77.59, Address: "MG Road"},
		Drop:          model.GeoPoint{Lat: 12.93, Lng: 77.62, Address: "Koramangala"},
		ScheduledTime: scheduledTime,
		VehicleType:   model.VehicleCab,
	})

	tests := []struct {
		name       string
		body       []byte
		createFunc func(ctx context.Context, req *model.CreateRideRequest) (*model.ScheduledRide, []string, error)
		wantCode   int
	}{
		{
			name:     "created",
			body:     body,
			wantCode: http.StatusCreated,
		},
		{
			name:     "malformed body",
			body:     []byte("{not json"),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "window violation surfaces as 422",
			body: body,
			createFunc: func(ctx context.Context, req *model.CreateRideRequest) (*model.ScheduledRide, []string, error) {
				return nil, nil, apperrors.Validation("scheduled time must be at least 30m0s in the future", nil)
			},
			wantCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewRideHandler(&mockLifecycleService{createFunc: tt.createFunc}, testLogger())
			router := newRouter(handler)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/scheduled-rides", bytes.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestCreate_WarningsInResponse(t *testing.T) {
	mockService := &mockLifecycleService{
		createFunc: func(ctx context.Context, req *model.CreateRideRequest) (*model.ScheduledRide, []string, error) {
			return &model.ScheduledRide{ID: "r1", Status: model.StatusPending},
				[]string{"remote mirror write failed; record kept locally"}, nil
		},
	}
	handler := NewRideHandler(mockService, testLogger())
	router := newRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scheduled-rides",
		bytes.NewReader([]byte(`{"owner_id":"u1"}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp struct {
		Data CreateRideResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data.Warnings) != 1 {
		t.Errorf("warnings = %v, want one entry", resp.Data.Warnings)
	}
}

func TestGetAll_QueryValidation(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantCode int
	}{
		{"missing owner", "", http.StatusBadRequest},
		{"invalid limit", "?owner_id=u1&limit=abc", http.StatusBadRequest},
		{"invalid offset", "?owner_id=u1&offset=xyz", http.StatusBadRequest},
		{"valid", "?owner_id=u1&limit=10&offset=0", http.StatusOK},
		{"defaults applied", "?owner_id=u1", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewRideHandler(&mockLifecycleService{}, testLogger())
			router := newRouter(handler)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/scheduled-rides"+tt.query, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestGetAll_NormalizesPagination(t *testing.T) {
	var gotLimit int
	mockService := &mockLifecycleService{
		listFunc: func(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.ScheduledRide, int64, error) {
			gotLimit = limit
			return []*model.ScheduledRide{}, 0, nil
		},
	}
	handler := NewRideHandler(mockService, testLogger())
	router := newRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scheduled-rides?owner_id=u1&limit=-5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotLimit <= 0 {
		t.Errorf("negative limit reached the service as %d", gotLimit)
	}
}

func TestCancel_HTTPStatuses(t *testing.T) {
	tests := []struct {
		name       string
		cancelFunc func(ctx context.Context, id string) error
		wantCode   int
	}{
		{"cancelled", nil, http.StatusNoContent},
		{
			"unknown ride",
			func(ctx context.Context, id string) error {
				return apperrors.NotFoundWithID("scheduled ride", id)
			},
			http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewRideHandler(&mockLifecycleService{cancelFunc: tt.cancelFunc}, testLogger())
			router := newRouter(handler)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/scheduled-rides/id/r1", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestReconcile_Accepted(t *testing.T) {
	mockService := &mockLifecycleService{}
	handler := NewRideHandler(mockService, testLogger())
	router := newRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scheduled-rides/reconcile", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202", rec.Code)
	}
	if mockService.triggered != 1 {
		t.Errorf("TriggerReconcile called %d times, want 1", mockService.triggered)
	}
}
