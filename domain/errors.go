package domain

import (
	"errors"
	"fmt"
)

// 错误分级：校验类与未找到类错误在任何副作用之前拒绝整个请求；
// 单条合成失败只跳过该条；结构性图错误属于程序缺陷，必须显式抛出。
var (
	ErrValidation         = errors.New("invalid request parameters")
	ErrSoundNotFound      = errors.New("sound not found")
	ErrLineageNotFound    = errors.New("lineage not found")
	ErrLineageNodeMissing = errors.New("lineage node not found")
	ErrLineageExists      = errors.New("lineage already exists for root sound")
	ErrStoreInconsistency = errors.New("lineage walk exceeded node bound")
)

// BatchExhaustedError 一批变体请求全部失败时返回的唯一批级错误
type BatchExhaustedError struct {
	Requested int // 请求的变体数量
	Failed    int // 实际失败数量（等于 Requested）
}

func (e *BatchExhaustedError) Error() string {
	return fmt.Sprintf("all %d of %d requested variations failed", e.Failed, e.Requested)
}
