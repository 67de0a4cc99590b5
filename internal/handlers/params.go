package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// --------------------------------------------------
// Binding
// --------------------------------------------------

func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return httperr.ErrValidation("invalid_request", validators.Message(err))
	}
	return nil
}

// --------------------------------------------------
// Path / query
// --------------------------------------------------

func pathID(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, httperr.ErrValidation("invalid_id", "Identificador inválido.")
	}
	return uint(v), nil
}

func queryUint(c *gin.Context, name string) (*uint, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_filter", "Filtro inválido: "+name+".")
	}
	id := uint(v)
	return &id, nil
}

func queryBool(c *gin.Context, name string) (*bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_filter", "Filtro inválido: "+name+".")
	}
	return &v, nil
}

func actorID(c *gin.Context) *uint {
	if id, ok := currentIdentity(c); ok {
		v := id.UserID()
		return &v
	}
	return nil
}
