package controllers

import (
	"net/http"

	"LoveForTennis/models/dto"
	"LoveForTennis/services/dummy"

	"github.com/gin-gonic/gin"
)

// @Summary Lists dummy entities
// @Tags dummy
// @Produce json
// @Success 200 {array} dto.DummyEntity
// @Router /api/dummy [get]
func ListDummies(svc *dummy.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		entities, err := svc.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, entities)
	}
}

// @Summary Gets a dummy entity
// @Tags dummy
// @Produce json
// @Param id path int true "Id"
// @Success 200 {object} dto.DummyEntity
// @Failure 404 {object} ErrorResponse
// @Router /api/dummy/{id} [get]
func GetDummy(svc *dummy.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		entity, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, entity)
	}
}

// @Summary Creates a dummy entity
// @Tags dummy
// @Accept json
// @Produce json
// @Param request body dto.DummyEntity true "Entity"
// @Success 201 {object} dto.DummyEntity
// @Failure 400 {object} ErrorResponse
// @Router /api/dummy [post]
// @Security ApiKeyAuth
func CreateDummy(svc *dummy.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.DummyEntity
		if !bindJSON(c, &req) {
			return
		}
		created, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// @Summary Updates a dummy entity
// @Tags dummy
// @Accept json
// @Produce json
// @Param id path int true "Id"
// @Param request body dto.DummyEntity true "Entity"
// @Success 200 {object} dto.DummyEntity
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/dummy/{id} [put]
// @Security ApiKeyAuth
func UpdateDummy(svc *dummy.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		var req dto.DummyEntity
		if !bindJSON(c, &req) {
			return
		}
		req.ID = id
		updated, err := svc.Update(c.Request.Context(), req)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// @Summary Deletes a dummy entity
// @Tags dummy
// @Param id path int true "Id"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/dummy/{id} [delete]
// @Security ApiKeyAuth
func DeleteDummy(svc *dummy.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
