package response

import "github.com/gin-gonic/gin"

// Resp 错误响应体；成功响应直接返回记录本身
type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, struct{}{})
}

// Abort 以同一个状态码写响应头和 body.code
func Abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, Error(code, msg))
}
