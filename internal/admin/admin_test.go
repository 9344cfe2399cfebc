package admin_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"anoa.com/schoolrecords/internal/admin"
	"anoa.com/schoolrecords/internal/bootstrap"
	"anoa.com/schoolrecords/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSite(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "admin.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, bootstrap.Migrate(db))

	site := admin.New(db,
		admin.Resource{
			Name:           "user",
			Model:          func() interface{} { return &model.User{} },
			SearchFields:   []string{"email", "role"},
			ListFields:     []string{"id", "email", "role", "is_active"},
			EditableFields: []string{"email", "hashed_password", "is_active", "role"},
			ReadonlyFields: []string{"id"},
		},
		admin.Resource{
			Name:           "student_data",
			Model:          func() interface{} { return &model.StudentData{} },
			SearchFields:   []string{"data"},
			ListFields:     []string{"id", "student_id", "data"},
			EditableFields: []string{"student_id", "data"},
			ReadonlyFields: []string{"id"},
		},
	)

	router := gin.New()
	site.Mount(router.Group("/admin"))
	return router, db
}

func do(router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminSite(t *testing.T) {
	router, db := setupSite(t)

	t.Run("CreateBypassesAPIRules", func(t *testing.T) {
		// Not a valid email and not a known role; the schema-level tool
		// takes it anyway.
		w := do(router, http.MethodPost, "/admin/user", map[string]interface{}{
			"email":           "not-an-email",
			"hashed_password": "raw-value",
			"is_active":       true,
			"role":            "janitor",
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		var row model.User
		require.NoError(t, db.Where("email = ?", "not-an-email").First(&row).Error)
		assert.Equal(t, model.Role("janitor"), row.Role)
	})

	t.Run("CreateWithoutIsActiveDefaultsTrue", func(t *testing.T) {
		w := do(router, http.MethodPost, "/admin/user", map[string]interface{}{
			"email":           "defaulted@school.local",
			"hashed_password": "x",
			"role":            "parent",
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		var row model.User
		require.NoError(t, db.Where("email = ?", "defaulted@school.local").First(&row).Error)
		assert.True(t, row.IsActive)
	})

	t.Run("ReadonlyFieldStripped", func(t *testing.T) {
		w := do(router, http.MethodPost, "/admin/user", map[string]interface{}{
			"id":              4096,
			"email":           "pinned@school.local",
			"hashed_password": "x",
			"is_active":       true,
			"role":            "teacher",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var row model.User
		require.NoError(t, db.Where("email = ?", "pinned@school.local").First(&row).Error)
		assert.NotEqual(t, uint(4096), row.ID)
	})

	t.Run("ListSelectsDeclaredColumns", func(t *testing.T) {
		w := do(router, http.MethodGet, "/admin/user", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Data []map[string]interface{} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		require.NotEmpty(t, response.Data)
		for _, item := range response.Data {
			assert.Contains(t, item, "email")
			assert.NotContains(t, item, "hashed_password")
		}
	})

	t.Run("Search", func(t *testing.T) {
		w := do(router, http.MethodGet, "/admin/user?q=pinned", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Data []map[string]interface{} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		require.Len(t, response.Data, 1)
		assert.Equal(t, "pinned@school.local", response.Data[0]["email"])
	})

	t.Run("StudentDataLifecycle", func(t *testing.T) {
		// The FK target does not need to be a student, or exist at all.
		w := do(router, http.MethodPost, "/admin/student_data", map[string]interface{}{
			"student_id": 777,
			"data":       "term grades",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var record model.StudentData
		require.NoError(t, db.Where("student_id = ?", 777).First(&record).Error)
		assert.Equal(t, "term grades", record.Data)

		w = do(router, http.MethodPut, fmt.Sprintf("/admin/student_data/%d", record.ID),
			map[string]interface{}{"data": "updated grades"})
		assert.Equal(t, http.StatusOK, w.Code)

		require.NoError(t, db.First(&record, record.ID).Error)
		assert.Equal(t, "updated grades", record.Data)

		w = do(router, http.MethodDelete, fmt.Sprintf("/admin/student_data/%d", record.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)

		err := db.First(&model.StudentData{}, record.ID).Error
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("SanitizesMarkup", func(t *testing.T) {
		w := do(router, http.MethodPost, "/admin/student_data", map[string]interface{}{
			"student_id": 5,
			"data":       `<script>alert(1)</script>notes`,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var record model.StudentData
		require.NoError(t, db.Where("student_id = ?", 5).First(&record).Error)
		assert.Equal(t, "notes", record.Data)
	})

	t.Run("UnknownResource", func(t *testing.T) {
		w := do(router, http.MethodGet, "/admin/invoices", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("UpdateMissingRow", func(t *testing.T) {
		w := do(router, http.MethodPut, "/admin/user/9999",
			map[string]interface{}{"is_active": false})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("NoEditableFields", func(t *testing.T) {
		w := do(router, http.MethodPost, "/admin/user", map[string]interface{}{
			"id": 1,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
