package httpapi

// Result フロントのAxios層と揃えた共通エンベロープ
// - code: 2000 成功
// - type: 'success' | 'error'
// - message: string
// - result: any
type Result[T any] struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

const (
	ResultSuccess = 2000
	ResultError   = -1
	// ResultTokenExpired はcode=60401 + HTTP 401（フロントのインターセプタが特別扱い）
	ResultTokenExpired = 60401
)

func Ok[T any](result T) Result[T] {
	return Result[T]{Code: ResultSuccess, Type: "success", Message: "ok", Result: result}
}

func Fail(message string) Result[any] {
	return Result[any]{Code: ResultError, Type: "error", Message: message, Result: nil}
}

func TokenExpired() Result[any] {
	return Result[any]{Code: ResultTokenExpired, Type: "error", Message: "token expired", Result: nil}
}
