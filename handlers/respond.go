package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/KAKULASANJAY/localbites/lifecycle"
	"github.com/KAKULASANJAY/localbites/pricing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Every response carries the same envelope the frontend depends on:
// {success, message?, data?, count?, total?, pages?}.

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{"success": true, "message": message, "data": data})
}

func respondList(c *gin.Context, data interface{}, count int, total int64, pages int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
		"total":   total,
		"pages":   pages,
		"data":    data,
	})
}

func respondFail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondError maps domain errors to HTTP statuses deterministically.
// Anything unclassified is a 500: logged in full, generic to the caller.
func respondError(c *gin.Context, err error) {
	var perr *pricing.Error
	if errors.As(err, &perr) {
		status := http.StatusBadRequest
		if perr.Kind == pricing.KindRestaurantNotFound {
			status = http.StatusNotFound
		}
		respondFail(c, status, perr.Message)
		return
	}

	var terr *lifecycle.TransitionError
	if errors.As(err, &terr) {
		respondFail(c, http.StatusBadRequest, terr.Error())
		return
	}

	switch {
	case errors.Is(err, lifecycle.ErrOrderNotFound):
		respondFail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, lifecycle.ErrForbidden):
		respondFail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, lifecycle.ErrNotCancellable):
		respondFail(c, http.StatusBadRequest, err.Error())
	default:
		zap.L().Error("unhandled error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		respondFail(c, http.StatusInternalServerError, "Something went wrong")
	}
}

// pagination reads page/limit query params with the given default page size.
func pagination(c *gin.Context, defaultLimit int) (page, limit int) {
	page = queryInt(c, "page", 1)
	limit = queryInt(c, "limit", defaultLimit)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

func queryInt(c *gin.Context, key string, fallback int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
