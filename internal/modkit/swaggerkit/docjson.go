package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strconv"

	perr "biasdb/internal/platform/errors"
)

//go:embed openapi.json
var openapiDoc []byte

// docReader is a seam so tests can serve a broken document
var docReader = func() []byte { return openapiDoc }

// sharedErrors are documented on every operation that does not list them itself
var sharedErrors = map[string]struct {
	status string
	code   perr.ErrorCode
	msg    string
}{
	"400": {"Bad Request", perr.ErrorCodeValidation, "bias_type is required"},
	"500": {"Internal Server Error", perr.ErrorCodePanic, "panic recovered"},
}

var errorSchema = map[string]any{
	"type":        "object",
	"description": "Error envelope",
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer", "format": "int32"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer", "format": "int32"},
		"error":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
	"required": []any{"status_code", "status", "code", "error"},
}

// document decorates the embedded OpenAPI doc with the shared error envelope
func document() ([]byte, error) {
	var spec map[string]any
	if err := json.Unmarshal(docReader(), &spec); err != nil {
		return nil, err
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": "/api/v1"}}
	}

	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = errorSchema
	}

	paths, _ := spec["paths"].(map[string]any)
	for _, item := range paths {
		ops, _ := item.(map[string]any)
		for _, op := range ops {
			op, ok := op.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			for code, e := range sharedErrors {
				if _, ok := resps[code]; !ok {
					resps[code] = errorResponse(code, e.status, e.code, e.msg)
				}
			}
		}
	}
	return json.Marshal(spec)
}

func errorResponse(code, status string, ec perr.ErrorCode, msg string) map[string]any {
	n, _ := strconv.Atoi(code)
	return map[string]any{
		"description": status,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": n,
					"status":      status,
					"code":        ec,
					"error":       msg,
					"request_id":  "579f33bf50b1/abc-000001",
				},
			},
		},
	}
}

// child returns m[key] as a map, creating it when absent
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		doc, err := document()
		if err != nil {
			http.Error(w, "openapi document is not valid JSON", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(doc)
	}
}
