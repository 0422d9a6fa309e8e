package domain

// ErrorResponse API错误响应统一结构
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse API成功提示统一结构
type SuccessResponse struct {
	Message string `json:"message"`
}
