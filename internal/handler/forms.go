package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"yatube/internal/models"
	"yatube/internal/repository"
)

const (
	msgRequired      = "Обязательное поле."
	msgInvalidChoice = "Выберите корректный вариант. Вашего варианта нет среди допустимых значений."
	msgInvalidImage  = "Загрузите правильное изображение. Файл, который вы загрузили, поврежден или не является изображением."
	msgEmptyFile     = "Отправленный файл пуст."
	msgFileTooLarge  = "Размер файла превышает допустимый."
	msgUsernameTaken = "Пользователь с таким именем уже существует."
	msgPasswordLong  = "Пароль слишком длинный."
	msgBadLogin      = "Пожалуйста, введите правильные имя пользователя и пароль. Оба поля могут быть чувствительны к регистру."
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// NewValidator reports field names from the form tag and knows the username rule.
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	// max counts runes, bcrypt limits bytes
	v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})

	return v
}

// FieldErrors maps form field names to a message.
type FieldErrors map[string]string

func (e FieldErrors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "max":
		return fmt.Sprintf("Убедитесь, что это значение содержит не более %s символов.", fe.Param())
	case "min":
		return fmt.Sprintf("Убедитесь, что это значение содержит не менее %s символов.", fe.Param())
	case "email":
		return "Введите правильный адрес электронной почты."
	case "username":
		return "Введите правильное имя пользователя. Оно может содержать только буквы, цифры и знаки @/./+/-/_."
	case "numeric":
		return msgInvalidChoice
	case "maxbytes":
		return msgPasswordLong
	}
	return "Некорректное значение."
}

// validateForm runs struct validation and collects per-field messages.
func (h *Handlers) validateForm(form interface{}, errs FieldErrors) {
	err := h.Validate.Struct(form)
	if err == nil {
		return
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs.Add("form", err.Error())
		return
	}

	for _, fe := range validationErrors {
		errs.Add(fe.Field(), validationMessage(fe))
	}
}

type PostForm struct {
	Text  string `form:"text" validate:"required"`
	Group string `form:"group" validate:"omitempty,numeric"`

	// current image of an edited post
	Image      string `form:"-"`
	ClearImage bool   `form:"-"`

	Errors FieldErrors `form:"-"`

	// set when the request body could not be read
	unread bool
}

func (f *PostForm) Valid() bool {
	return len(f.Errors) == 0
}

// GroupID returns the selected group, nil for none.
func (f *PostForm) GroupID() *int64 {
	if f.Group == "" {
		return nil
	}
	id, err := strconv.ParseInt(f.Group, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

// keep fills text and group from bound when the submitted body was lost.
func (f *PostForm) keep(bound *PostForm) {
	if !f.unread {
		return
	}
	f.Text = bound.Text
	f.Group = bound.Group
}

func postFormFromPost(post *models.Post) *PostForm {
	form := &PostForm{
		Text:   post.Text,
		Image:  post.Image,
		Errors: FieldErrors{},
	}
	if post.GroupID != nil {
		form.Group = strconv.FormatInt(*post.GroupID, 10)
	}
	return form
}

// parsePostForm reads text, group, image and image-clear from a
// multipart or urlencoded body.
func (h *Handlers) parsePostForm(w http.ResponseWriter, r *http.Request, groups []models.Group) (*PostForm, *repository.ImageUpload) {
	form := &PostForm{Errors: FieldErrors{}}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		form.unread = true
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			form.Errors.Add("image", msgFileTooLarge)
			return form, nil
		}
		form.Errors.Add("form", err.Error())
		return form, nil
	}

	form.Text = strings.TrimSpace(r.FormValue("text"))
	form.Group = strings.TrimSpace(r.FormValue("group"))
	form.ClearImage = r.FormValue("image-clear") != ""

	h.validateForm(form, form.Errors)

	if _, hasErr := form.Errors["group"]; !hasErr && form.Group != "" && !groupExists(groups, form.GroupID()) {
		form.Errors.Add("group", msgInvalidChoice)
	}

	image, err := readImage(r, h.Cfg.MaxUploadSize)
	if err != nil {
		form.Errors.Add("image", err.Error())
		return form, nil
	}

	return form, image
}

func groupExists(groups []models.Group, id *int64) bool {
	if id == nil {
		return false
	}
	for _, g := range groups {
		if g.GroupID == *id {
			return true
		}
	}
	return false
}

// readImage returns the uploaded "image" file, nil when none was sent.
// The content is sniffed, the client supplied type is ignored.
func readImage(r *http.Request, maxSize int64) (*repository.ImageUpload, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, errors.New(msgInvalidImage)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, errors.New(msgInvalidImage)
	}
	if int64(len(data)) > maxSize {
		return nil, errors.New(msgFileTooLarge)
	}
	if len(data) == 0 {
		return nil, errors.New(msgEmptyFile)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, errors.New(msgInvalidImage)
	}

	return &repository.ImageUpload{
		FileName:    header.Filename,
		ContentType: mtype.String(),
		Data:        data,
	}, nil
}

type CommentForm struct {
	Text   string      `form:"text" validate:"required"`
	Errors FieldErrors `form:"-"`
}

type LoginForm struct {
	Username string      `form:"username" validate:"required"`
	Password string      `form:"password" validate:"required"`
	Errors   FieldErrors `form:"-"`
}

type SignupForm struct {
	FirstName string      `form:"first_name" validate:"max=150"`
	LastName  string      `form:"last_name" validate:"max=150"`
	Username  string      `form:"username" validate:"required,max=150,username"`
	Email     string      `form:"email" validate:"omitempty,email,max=254"`
	Password  string      `form:"password" validate:"required,min=8,maxbytes=72"`
	Errors    FieldErrors `form:"-"`
}
