package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wtsplinks/pkg/middleware"
)

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(middleware.ContextUserID))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
