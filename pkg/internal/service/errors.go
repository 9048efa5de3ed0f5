package service

import "errors"

// 业务错误分类：校验错误在任何文件写入前返回；FileMissing 表示登记表与
// 磁盘在读取时发现分歧.
var (
	ErrInvalidFileType = errors.New("only .glb files are allowed")
	ErrFileTooLarge    = errors.New("file exceeds upload size limit")
	ErrFileMissing     = errors.New("model file missing from active area")
)
