// Package handler exposes the catalog and the video gallery over HTTP.
package handler

type ErrorResponse struct {
	Error string `json:"error"`
}
