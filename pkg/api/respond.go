package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// messageResponse 只有 message 字段的错误响应
type messageResponse struct {
	Message string `json:"message"`
}

// validationResponse 请求体校验失败的响应
type validationResponse struct {
	Message string          `json:"message"`
	Errors  FlattenedErrors `json:"errors"`
}

// FlattenedErrors 扁平化的校验错误
// FormErrors 是与具体字段无关的错误（如请求体不是 JSON 对象）
type FlattenedErrors struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

func newFlattenedErrors() FlattenedErrors {
	return FlattenedErrors{
		FormErrors:  []string{},
		FieldErrors: map[string][]string{},
	}
}

// Empty 是否没有任何错误
func (f FlattenedErrors) Empty() bool {
	return len(f.FormErrors) == 0 && len(f.FieldErrors) == 0
}

func (f FlattenedErrors) addField(field, msg string) {
	f.FieldErrors[field] = append(f.FieldErrors[field], msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Warning: failed to encode response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func writeInternalError(w http.ResponseWriter) {
	writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
}
