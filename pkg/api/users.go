package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gonewx/gravity-jump/pkg/store"
	"golang.org/x/crypto/bcrypt"
)

// maxBodyBytes POST 请求体上限
const maxBodyBytes = 1 << 16

// PublicUser 返回给客户端的用户，不含密码
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// createUserRequest POST /api/users 请求体
// bcrypt 只使用密码的前 72 字节，更长的密码直接拒绝
type createUserRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

func toPublicUser(u store.User) PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.List(r.Context())
	if err != nil {
		log.Printf("[API] list users failed: %v", err)
		writeInternalError(w)
		return
	}
	public := make([]PublicUser, len(users))
	for i, u := range users {
		public[i] = toPublicUser(u)
	}
	writeJSON(w, http.StatusOK, public)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(r.PathValue("id"))
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("[API] get user %d failed: %v", id, err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, toPublicUser(user))
}

// parseUserID 只接受 >= 1 的十进制整数
func parseUserID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	req, verrs := s.decodeCreateUser(r)
	if !verrs.Empty() {
		writeJSON(w, http.StatusBadRequest, validationResponse{
			Message: "Invalid user data",
			Errors:  verrs,
		})
		return
	}

	ctx := r.Context()
	if _, err := s.store.GetByUsername(ctx, req.Username); err == nil {
		writeMessage(w, http.StatusConflict, "Username already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("[API] lookup username %q failed: %v", req.Username, err)
		writeInternalError(w)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		log.Printf("[API] hash password failed: %v", err)
		writeInternalError(w)
		return
	}

	user, err := s.store.Create(ctx, req.Username, string(hash))
	if errors.Is(err, store.ErrConflict) {
		// 并发创建同名用户时由存储层兜底
		writeMessage(w, http.StatusConflict, "Username already exists")
		return
	}
	if err != nil {
		log.Printf("[API] create user %q failed: %v", req.Username, err)
		writeInternalError(w)
		return
	}
	log.Printf("[API] created user %d (%s)", user.ID, user.Username)
	writeJSON(w, http.StatusCreated, toPublicUser(user))
}

// decodeCreateUser 解析并校验请求体，返回的错误已经扁平化
func (s *Server) decodeCreateUser(r *http.Request) (createUserRequest, FlattenedErrors) {
	errs := newFlattenedErrors()
	var req createUserRequest

	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			errs.addField(typeErr.Field, fmt.Sprintf("Expected %s, received %s", typeErr.Type.Kind(), typeErr.Value))
			return req, errs
		}
		errs.FormErrors = append(errs.FormErrors, "Expected a JSON object")
		return req, errs
	}

	if err := s.validate.Struct(&req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			errs.FormErrors = append(errs.FormErrors, err.Error())
			return req, errs
		}
		for _, fe := range fieldErrs {
			errs.addField(fe.Field(), fieldErrorMessage(fe))
		}
	}
	return req, errs
}

// fieldErrorMessage 把校验标签转为可读消息
func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "max":
		return fmt.Sprintf("Must contain at most %s character(s)", fe.Param())
	case "min":
		return fmt.Sprintf("Must contain at least %s character(s)", fe.Param())
	default:
		return fmt.Sprintf("Failed %q validation", fe.Tag())
	}
}
