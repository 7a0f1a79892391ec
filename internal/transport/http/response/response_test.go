package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	assert.Equal(t, Resp{Code: 404, Msg: "Not Found", Data: struct{}{}}, Error(CodeNotFound, ""))
	assert.Equal(t, "playlist gone", Error(CodeNotFound, "playlist gone").Msg)
}

func TestAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Abort(c, CodeTooManyRequests, "")
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(429), body["code"])
	assert.Equal(t, "Too Many Requests", body["msg"])
	assert.Equal(t, map[string]any{}, body["data"])
}
