package api

import (
	"github.com/gin-gonic/gin"
)

// resource serves the six routes every entity has: list, get, get by name,
// create, update and delete.
type resource[T, C, U any] struct {
	label string // "Player", used in messages
	path  string // "players", used in Location headers
	svc   Entity[T, C, U]
	idOf  func(*T) int
	del   func(c *gin.Context, id int) error
}

func (r resource[T, C, U]) mount(g *gin.RouterGroup) {
	g.GET("", r.list())
	g.GET("/:id", r.get())
	g.GET("/byname/:name", r.byName())
	g.POST("", r.create())
	g.PUT("/:id", r.update())
	g.DELETE("/:id", r.remove())
}

func (r resource[T, C, U]) list() gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := r.svc.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		list(c, items)
	}
}

func (r resource[T, C, U]) get() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id", r.label)
		if !ok {
			return
		}
		item, err := r.svc.Get(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(200, item)
	}
}

func (r resource[T, C, U]) byName() gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := r.svc.GetByName(c.Request.Context(), c.Param("name"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(200, item)
	}
}

func (r resource[T, C, U]) create() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in C
		if !bind(c, &in) {
			return
		}
		item, err := r.svc.Create(c.Request.Context(), in)
		if err != nil {
			fail(c, err)
			return
		}
		created(c, r.path, r.idOf(item), item)
	}
}

// update confirms the entity exists before writing, so a missing id is a 404
// even when the body is valid.
func (r resource[T, C, U]) update() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id", r.label)
		if !ok {
			return
		}
		var in U
		if !bind(c, &in) {
			return
		}
		ctx := c.Request.Context()
		if _, err := r.svc.Get(ctx, id); err != nil {
			fail(c, err)
			return
		}
		if err := r.svc.Update(ctx, id, in); err != nil {
			fail(c, err)
			return
		}
		updated(c, r.label, id)
	}
}

func (r resource[T, C, U]) remove() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id", r.label)
		if !ok {
			return
		}
		if _, err := r.svc.Get(c.Request.Context(), id); err != nil {
			fail(c, err)
			return
		}
		if err := r.del(c, id); err != nil {
			fail(c, err)
			return
		}
		deleted(c, r.label, id)
	}
}
