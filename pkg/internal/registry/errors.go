package registry

import "errors"

// 注册表错误分类：校验与未命中错误属于预期控制流，由上层直接转译为响应.
var (
	ErrDuplicateClient = errors.New("client already exists")
	ErrClientNotFound  = errors.New("client not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrMissingIDs      = errors.New("client id and project id are required")
)
