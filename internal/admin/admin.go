// Package admin exposes a schema-level CRUD surface over registered
// entities. It talks to the store directly and deliberately skips the API
// layer's validation and authorization: it is the superset-privilege tool
// an operator uses, not a second public API.
package admin

import (
	"fmt"
	"net/http"

	"anoa.com/schoolrecords/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// Resource declares one entity binding: which columns show up in lists,
// which are searchable, and which may never be written.
type Resource struct {
	Name           string
	Model          func() interface{}
	SearchFields   []string
	ListFields     []string
	EditableFields []string
	ReadonlyFields []string
}

type Site struct {
	db        *gorm.DB
	sanitizer *bluemonday.Policy
	resources map[string]Resource
}

// New builds a configured site from the store handle and the entity
// declarations. Registration is explicit; nothing happens at import time.
func New(db *gorm.DB, resources ...Resource) *Site {
	site := &Site{
		db:        db,
		sanitizer: bluemonday.StrictPolicy(),
		resources: make(map[string]Resource, len(resources)),
	}
	for _, res := range resources {
		site.resources[res.Name] = res
	}
	return site
}

// Mount registers the generic handlers under the given router group.
func (s *Site) Mount(r gin.IRouter) {
	r.GET("/:resource", s.list)
	r.POST("/:resource", s.create)
	r.GET("/:resource/:id", s.get)
	r.PUT("/:resource/:id", s.update)
	r.DELETE("/:resource/:id", s.delete)
}

func (s *Site) resource(c *gin.Context) (Resource, bool) {
	res, ok := s.resources[c.Param("resource")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown resource"})
	}
	return res, ok
}

func (s *Site) list(c *gin.Context) {
	res, ok := s.resource(c)
	if !ok {
		return
	}

	query := s.db.WithContext(c.Request.Context()).Model(res.Model())

	if q := c.Query("q"); q != "" && len(res.SearchFields) > 0 {
		pattern := "%" + q + "%"
		search := s.db.Where(searchClause(res.SearchFields[0]), pattern)
		for _, field := range res.SearchFields[1:] {
			search = search.Or(searchClause(field), pattern)
		}
		query = query.Where(search)
	}

	var rows []map[string]interface{}
	if err := query.Select(res.ListFields).Order("id").Find(&rows).Error; err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (s *Site) get(c *gin.Context) {
	res, ok := s.resource(c)
	if !ok {
		return
	}

	var rows []map[string]interface{}
	err := s.db.WithContext(c.Request.Context()).
		Model(res.Model()).
		Where("id = ?", c.Param("id")).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": res.Name + " not found"})
		return
	}

	c.JSON(http.StatusOK, rows[0])
}

func (s *Site) create(c *gin.Context) {
	res, ok := s.resource(c)
	if !ok {
		return
	}

	payload, ok := s.bindPayload(c, res)
	if !ok {
		return
	}

	err := s.db.WithContext(c.Request.Context()).
		Model(res.Model()).
		Create(payload).Error
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": res.Name + " created"})
}

func (s *Site) update(c *gin.Context) {
	res, ok := s.resource(c)
	if !ok {
		return
	}

	payload, ok := s.bindPayload(c, res)
	if !ok {
		return
	}

	result := s.db.WithContext(c.Request.Context()).
		Model(res.Model()).
		Where("id = ?", c.Param("id")).
		Updates(payload)
	if result.Error != nil {
		response.Error(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": res.Name + " not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": res.Name + " updated"})
}

func (s *Site) delete(c *gin.Context) {
	res, ok := s.resource(c)
	if !ok {
		return
	}

	result := s.db.WithContext(c.Request.Context()).
		Where("id = ?", c.Param("id")).
		Delete(res.Model())
	if result.Error != nil {
		response.Error(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": res.Name + " not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": res.Name + " deleted"})
}

// bindPayload reads a JSON object, drops anything that is not an editable
// column, and strips markup from string values.
func (s *Site) bindPayload(c *gin.Context, res Resource) (map[string]interface{}, bool) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "request body must be a JSON object"})
		return nil, false
	}

	editable := make(map[string]bool, len(res.EditableFields))
	for _, field := range res.EditableFields {
		editable[field] = true
	}

	payload := make(map[string]interface{}, len(raw))
	for key, value := range raw {
		if !editable[key] {
			continue
		}
		if str, isString := value.(string); isString {
			value = s.sanitizer.Sanitize(str)
		}
		payload[key] = value
	}
	for _, field := range res.ReadonlyFields {
		delete(payload, field)
	}

	if len(payload) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no editable fields in request body"})
		return nil, false
	}

	return payload, true
}

func searchClause(field string) string {
	return fmt.Sprintf("CAST(%s AS TEXT) LIKE ?", field)
}
