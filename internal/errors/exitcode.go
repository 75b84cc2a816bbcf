package errors

// ExitCode 是进程退出码（稳定契约）。
type ExitCode int

const (
	ExitOK ExitCode = 0

	// 2: 参数/配置错误
	ExitConfig ExitCode = 2

	// 3: 平台凭据存储返回失败状态
	ExitStore ExitCode = 3

	// 4: 存储报告成功但记录不可用
	ExitExtract ExitCode = 4

	// 5: 后端不可用
	ExitBackend ExitCode = 5

	// 10: 内部错误
	ExitInternal ExitCode = 10
)

func ExitCodeFor(code Code) ExitCode {
	switch code {
	case CodeCfgNotFound, CodeCfgInvalid, CodeInvalidArgument:
		return ExitConfig
	case CodeSaveFailed, CodeRetrieveFailed, CodeDeleteFailed:
		return ExitStore
	case CodeExtractFailed:
		return ExitExtract
	case CodeBackendUnsupported:
		return ExitBackend
	case CodeInternal:
		fallthrough
	default:
		return ExitInternal
	}
}
