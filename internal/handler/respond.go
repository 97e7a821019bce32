package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"mediabuy/internal/repository"
	"mediabuy/internal/service"
	"mediabuy/pkg/response"

	"github.com/gin-gonic/gin"
)

// responder resolves the dual-mode response strategy once per request instead
// of re-checking the content type in every handler branch. POSTs negotiate on
// the request content type, GETs on the Accept header.
type responder struct {
	c    *gin.Context
	json bool
}

func newResponder(c *gin.Context) responder {
	var json bool
	if c.Request.Method == http.MethodGet {
		json = strings.Contains(c.GetHeader("Accept"), "application/json")
	} else {
		json = strings.Contains(c.ContentType(), "application/json")
	}
	return responder{c: c, json: json}
}

func (r responder) IsJSON() bool { return r.json }

// Created answers a successful creation: 201 with the JSON body, or a redirect
// back to the listing page carrying a transient flash message.
func (r responder) Created(body any, redirectTo, flash string) {
	if r.json {
		r.c.JSON(http.StatusCreated, body)
		return
	}
	r.c.Redirect(http.StatusSeeOther, withFlash(redirectTo, flash, "success"))
}

// Fail answers a failed request: the status with an {error} body, or a redirect
// carrying the message as an error flash.
func (r responder) Fail(status int, msg, redirectTo string) {
	if r.json {
		r.c.JSON(status, response.Err(msg))
		return
	}
	r.c.Redirect(http.StatusSeeOther, withFlash(redirectTo, msg, "danger"))
}

func withFlash(path, msg, level string) string {
	q := url.Values{}
	q.Set("flash", msg)
	q.Set("level", level)
	return path + "?" + q.Encode()
}

// flashFrom pulls the transient flash message out of the query string for
// server-rendered pages.
func flashFrom(c *gin.Context) gin.H {
	return gin.H{
		"Flash":      c.Query("flash"),
		"FlashLevel": c.DefaultQuery("level", "success"),
	}
}

// parseID reads the numeric id path param. Non-numeric ids behave like missing
// records and yield a 404.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Err("not found"))
		return 0, false
	}
	return uint(id), true
}

// httpError maps a service error onto the taxonomy: validation failures are
// 400 with their own message, conflicts and missing references use the
// endpoint-specific messages, anything else is an opaque 500.
func httpError(err error, conflictMsg, notFoundMsg string) (int, string) {
	var ve service.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, conflictMsg
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, notFoundMsg
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
