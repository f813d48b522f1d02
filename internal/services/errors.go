package services

import "errors"

// 服务层错误分类：handler 据此映射 HTTP 状态码。
// ErrNotFound 同时覆盖"不存在"和"无权限"两种情况，避免泄露资源是否存在。
var (
	ErrNotFound   = errors.New("资源不存在")
	ErrInvalid    = errors.New("请求参数不合法")
	ErrOrphanNode = errors.New("节点数据不完整：存在悬空的父节点引用")
)
