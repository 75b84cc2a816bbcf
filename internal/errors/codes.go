package errors

// Code 是稳定错误码（字符串），供脚本与 agent 判断。
// 只增不改、不复用旧含义。
type Code string

const (
	// Config / args
	CodeCfgNotFound     Code = "CREDKEEP_CFG_NOT_FOUND"
	CodeCfgInvalid      Code = "CREDKEEP_CFG_INVALID"
	CodeInvalidArgument Code = "CREDKEEP_INVALID_ARGUMENT"

	// Credential store
	CodeSaveFailed     Code = "CREDKEEP_SAVE_FAILED"
	CodeRetrieveFailed Code = "CREDKEEP_RETRIEVE_FAILED"
	CodeDeleteFailed   Code = "CREDKEEP_DELETE_FAILED"
	CodeExtractFailed  Code = "CREDKEEP_EXTRACT_FAILED"

	// Backend
	CodeBackendUnsupported Code = "CREDKEEP_BACKEND_UNSUPPORTED"

	// Internal
	CodeInternal Code = "CREDKEEP_INTERNAL"
)

func AllCodes() []Code {
	return []Code{
		CodeCfgNotFound,
		CodeCfgInvalid,
		CodeInvalidArgument,
		CodeSaveFailed,
		CodeRetrieveFailed,
		CodeDeleteFailed,
		CodeExtractFailed,
		CodeBackendUnsupported,
		CodeInternal,
	}
}
