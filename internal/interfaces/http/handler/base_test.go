package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/cropledger/backend/internal/interfaces/http/dto"
	"github.com/cropledger/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func newTestContext(method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/", nil)

	h.Success(c, gin.H{"k": "v"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.Equal(t, "v", resp.Data.(map[string]any)["k"])
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/", nil)

	h.SuccessWithMeta(c, []string{"a", "b"}, 45, 2, 20)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 20, resp.Meta.PageSize)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestBaseHandlerCreated(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodPost, "/", nil)

	h.Created(c, gin.H{"id": "1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestBaseHandlerNoContent(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodDelete, "/", nil)

	h.NoContent(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestBaseHandlerBadRequestCarriesRequestID(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/", nil)
	c.Set(middleware.RequestIDKey, "req-42")

	h.BadRequest(c, "nope")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	assert.Equal(t, "nope", resp.Error.Message)
	assert.Equal(t, "req-42", resp.Error.RequestID)
}

func TestBaseHandlerHandleDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{
			name:       "validation",
			err:        shared.NewValidationError("entry_date", "date must use the YYYY-MM-DD format"),
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeValidation,
			wantField:  "entry_date",
		},
		{
			name:       "not found",
			err:        shared.NewNotFoundError("supply record", uuid.New()),
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrCodeNotFound,
		},
		{
			name:       "storage",
			err:        shared.NewStorageError("save supply record", errors.New("disk full")),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   dto.ErrCodeStorageUnavailable,
		},
		{
			name:       "duplicate",
			err:        shared.ErrDuplicate,
			wantStatus: http.StatusConflict,
			wantCode:   dto.ErrCodeDuplicateRequest,
		},
		{
			name:       "wrapped",
			err:        fmt.Errorf("resolve farm: %w", shared.NewNotFoundError("farm", "x")),
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newTestContext(http.MethodGet, "/", nil)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantField, resp.Error.Field)
		})
	}
}

func TestBaseHandlerHandleError(t *testing.T) {
	h := &BaseHandler{}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/", nil)
		h.HandleError(c, nil)
		assert.Empty(t, w.Body.String())
	})

	t.Run("unknown error hides its message", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/", nil)
		h.HandleError(c, errors.New("pq: password authentication failed"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
		assert.NotContains(t, resp.Error.Message, "password")
	})
}

type bindTarget struct {
	Name string `json:"name" binding:"required,max=5"`
}

func TestBaseHandlerBindJSON(t *testing.T) {
	h := &BaseHandler{}

	t.Run("valid body", func(t *testing.T) {
		c, _ := newTestContext(http.MethodPost, "/", []byte(`{"name":"abc"}`))
		var req bindTarget
		assert.True(t, h.BindJSON(c, &req))
		assert.Equal(t, "abc", req.Name)
	})

	t.Run("malformed json", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/", []byte(`{"name":`))
		var req bindTarget
		assert.False(t, h.BindJSON(c, &req))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidJSON, decodeResponse(t, w).Error.Code)
	})

	t.Run("validation failure lists fields", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/", []byte(`{"name":"toolong"}`))
		var req bindTarget
		assert.False(t, h.BindJSON(c, &req))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "name", resp.Error.Details[0].Field)
	})

	t.Run("body too large", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/", []byte(`{"name":"abcdefghijklmnop"}`))
		c.Request.Body = http.MaxBytesReader(w, c.Request.Body, 4)
		var req bindTarget
		assert.False(t, h.BindJSON(c, &req))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestBaseHandlerPathID(t *testing.T) {
	h := &BaseHandler{}

	t.Run("valid uuid", func(t *testing.T) {
		id := uuid.New()
		c, _ := newTestContext(http.MethodGet, "/", nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		got, ok := h.PathID(c)
		assert.True(t, ok)
		assert.Equal(t, id, got)
	})

	t.Run("invalid uuid", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/", nil)
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
		_, ok := h.PathID(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "id", decodeResponse(t, w).Error.Field)
	})
}
