package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrJobNotFound          = errors.New("任务不存在")
	ErrOrganizationNotFound = errors.New("组织不存在")
	ErrPlatformInvalid      = errors.New("平台参数错误")
	ErrStorageInvalid       = errors.New("不支持的存储方式")
	ErrFileNotSupported     = errors.New("不支持的文件类型")
	ErrColumnNotFound       = errors.New("文件中不存在指定的文本列")
	ErrFileEmpty            = errors.New("文件内容为空")
	ErrSourceUnavailable    = errors.New("上游数据源不可用")
	ErrClassifier           = errors.New("分类模型返回异常")
	ErrPersistence          = errors.New("数据写入失败")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrJobNotFound:          NotFound,
	ErrOrganizationNotFound: NotFound,
	ErrPlatformInvalid:      BadRequest,
	ErrStorageInvalid:       BadRequest,
	ErrFileNotSupported:     BadRequest,
	ErrColumnNotFound:       BadRequest,
	ErrFileEmpty:            BadRequest,
	ErrSourceUnavailable:    InternalServerError,
	ErrClassifier:           InternalServerError,
	ErrPersistence:          InternalServerError,
	UnExpectedError:         InternalServerError,
}
