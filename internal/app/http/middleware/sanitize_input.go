package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// SanitizeAndCleanInputMiddleware strips markup from every string in a JSON
// body, nested objects and arrays included. Fields named in raw are left
// alone at any depth; their handlers clean them with a policy of their own.
// Empty bodies pass through.
func SanitizeAndCleanInputMiddleware(raw ...string) gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()
	keep := make(map[string]struct{}, len(raw))
	for _, k := range raw {
		keep[k] = struct{}{}
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}

		var body interface{}
		if err := json.Unmarshal(buf, &body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		newBody, err := json.Marshal(clean(policy, keep, body))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

func clean(policy *bluemonday.Policy, keep map[string]struct{}, v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return policy.Sanitize(t)
	case map[string]interface{}:
		for k, child := range t {
			if _, ok := keep[k]; ok {
				continue
			}
			t[k] = clean(policy, keep, child)
		}
		return t
	case []interface{}:
		for i, child := range t {
			t[i] = clean(policy, keep, child)
		}
		return t
	default:
		return v
	}
}
