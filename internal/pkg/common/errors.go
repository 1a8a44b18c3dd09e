package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap 返回原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is 以錯誤代碼比對，讓 errors.Is 能辨識帶有不同原因的同類錯誤
func (e *CustomError) Is(target error) bool {
	var t *CustomError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithErr 複製錯誤並附加原因
func (e *CustomError) WithErr(err error) *CustomError {
	cp := *e
	cp.Err = err
	return &cp
}

// WithMessage 複製錯誤並替換訊息
func (e *CustomError) WithMessage(message string) *CustomError {
	cp := *e
	cp.Message = message
	return &cp
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ValidationError 表示驗證錯誤
type ValidationError struct {
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// AsCustomError 取出錯誤鏈中的 CustomError
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// 預定義錯誤代碼
const (
	ErrCodeInvalidRequest  = "INVALID_REQUEST"     // 400
	ErrCodeNotFound        = "NOT_FOUND"           // 404
	ErrCodeRequestTimeout  = "REQUEST_TIMEOUT"     // 408
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"   // 429
	ErrCodeInternalError   = "INTERNAL_ERROR"      // 500
	ErrCodeGatewayTimeout  = "GATEWAY_TIMEOUT"     // 504
	ErrCodeDataUnavailable = "DATA_UNAVAILABLE"    // 409
	ErrCodeNoCandidate     = "NO_CANDIDATE"        // 404
	ErrCodeStoreWrite      = "STORE_WRITE_FAILURE" // 500
	ErrCodeNoRecipeInImage = "NO_RECIPE_IN_IMAGE"  // 422
	ErrCodeAIServiceError  = "AI_SERVICE_ERROR"    // 503
	ErrCodeAIDisabled      = "AI_DISABLED"         // 503
)

// 預定義錯誤
var (
	ErrInvalidRequest = NewError(ErrCodeInvalidRequest, "invalid request", http.StatusBadRequest, nil)
	ErrNotFound       = NewError(ErrCodeNotFound, "resource not found", http.StatusNotFound, nil)
	ErrInternalError  = NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, nil)

	// 使用者可見的業務錯誤
	ErrDataUnavailable = NewError(ErrCodeDataUnavailable, "add data first", http.StatusConflict, nil)
	ErrEmptyPantry     = NewError(ErrCodeDataUnavailable, "pantry is empty, add ingredients first", http.StatusConflict, nil)
	ErrEmptyRecipeBook = NewError(ErrCodeDataUnavailable, "recipe book is empty, add recipes first", http.StatusConflict, nil)
	ErrNoCandidate     = NewError(ErrCodeNoCandidate, "no recommendation possible right now", http.StatusNotFound, nil)
	ErrStoreWrite      = NewError(ErrCodeStoreWrite, "failed to persist changes, reload before retrying", http.StatusInternalServerError, nil)

	// AI 與圖片
	ErrAIServiceError     = NewError(ErrCodeAIServiceError, "AI service error", http.StatusServiceUnavailable, nil)
	ErrAIDisabled         = NewError(ErrCodeAIDisabled, "AI service is not configured", http.StatusServiceUnavailable, nil)
	ErrNoRecipeInImage    = NewError(ErrCodeNoRecipeInImage, "no recipe found in the images", http.StatusUnprocessableEntity, nil)
	ErrInvalidImageFormat = NewError("INVALID_IMAGE_FORMAT", "invalid image format", http.StatusBadRequest, nil)
	ErrInvalidImageSize   = NewError("INVALID_IMAGE_SIZE", "image exceeds size limit", http.StatusBadRequest, nil)
	ErrCacheFull          = NewError("CACHE_FULL", "cache is full", http.StatusServiceUnavailable, nil)
	ErrCacheMiss          = NewError("CACHE_MISS", "cache miss", http.StatusNotFound, nil)
	ErrQueueFull          = NewError(ErrCodeTooManyRequests, "AI request queue is full, retry later", http.StatusTooManyRequests, nil)
)
