package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageSize is fixed; clients page with ?page=N only.
const PageSize = 10

var errInvalidPage = errors.New("invalid page")

// parsePage accepts positive integers only. Out-of-range pages are not an
// error: they produce an empty result set downstream.
func parsePage(raw string) (int, error) {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, errInvalidPage
	}
	return page, nil
}

// pageEnvelope builds the DRF-style page payload around the serialized rows.
func pageEnvelope(c *gin.Context, count int64, page int, results interface{}) gin.H {
	var next, previous interface{}
	if int64(page)*PageSize < count {
		next = pageURL(c, page+1)
	}
	if page > 1 {
		previous = pageURL(c, page-1)
	}
	return gin.H{
		"count":    count,
		"next":     next,
		"previous": previous,
		"results":  results,
	}
}

// pageURL rebuilds the request URL pointing at the given page, keeping the
// other query parameters. Page 1 drops the page parameter entirely.
func pageURL(c *gin.Context, page int) string {
	u := *c.Request.URL
	q := u.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	out := scheme + "://" + c.Request.Host + u.Path
	if u.RawQuery != "" {
		out += "?" + u.RawQuery
	}
	return out
}
