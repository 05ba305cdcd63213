package dto

import (
	"net/http"
	"strings"
)

// ErrorResponse is the error envelope returned on every failed request
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var statusByCode = map[string]int{
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"EMAIL_TAKEN":          http.StatusConflict,
	"STORE_CODE_TAKEN":     http.StatusConflict,
	"BARCODE_TAKEN":        http.StatusConflict,
	"INSUFFICIENT_STOCK":   http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"DUPLICATE_REQUEST":    http.StatusConflict,
	"UNAUTHORIZED":         http.StatusUnauthorized,
	"INVALID_CREDENTIALS":  http.StatusUnauthorized,
	"EMPTY_BILL":           http.StatusBadRequest,
}

// GetHTTPStatus maps a domain error code to an HTTP status. Validation
// codes share the INVALID_ prefix; anything unrecognized is a server
// error.
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
